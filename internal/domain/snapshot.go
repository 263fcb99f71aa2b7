package domain

import "time"

type StateAttributes struct {
	OutstandingBalance []BillHistoryEntry `json:"outstanding_balance"`
}

// Snapshot is the flattened result of one successful refresh. It is built
// once and never mutated afterwards.
type Snapshot struct {
	Quota              int64           `json:"quota"`
	LastUpdate         time.Time       `json:"last_update"`
	Speed              string          `json:"speed"`
	TotalConsumption   float64         `json:"total_consumption"`
	ExtraConsumption   float64         `json:"extra_consumption"`
	OutstandingBalance int64           `json:"outstanding_balance"`
	Currency           string          `json:"currency"`
	StateAttributes    StateAttributes `json:"state_attributes"`
}

func NewSnapshot(consumption Consumption, bills BillInfo) Snapshot {
	return Snapshot{
		Quota:              consumption.Quota,
		LastUpdate:         consumption.LastUpdate,
		Speed:              consumption.Speed,
		TotalConsumption:   consumption.TotalConsumption,
		ExtraConsumption:   consumption.ExtraConsumption,
		OutstandingBalance: int64(bills.TotalOutstanding.Amount),
		Currency:           bills.TotalOutstanding.Currency,
		StateAttributes: StateAttributes{
			OutstandingBalance: bills.UnpaidHistory(),
		},
	}
}

func (s Snapshot) Value(key SensorKey) (any, bool) {
	switch key {
	case SensorQuota:
		return s.Quota, true
	case SensorSpeed:
		return s.Speed, true
	case SensorTotalConsumption:
		return s.TotalConsumption, true
	case SensorExtraConsumption:
		return s.ExtraConsumption, true
	case SensorLastUpdate:
		return s.LastUpdate, true
	case SensorOutstandingBalance:
		return s.OutstandingBalance, true
	default:
		return nil, false
	}
}

// Attributes returns the auxiliary history published under a sensor key.
func (s Snapshot) Attributes(key SensorKey) []BillHistoryEntry {
	if key == SensorOutstandingBalance {
		return s.StateAttributes.OutstandingBalance
	}
	return nil
}
