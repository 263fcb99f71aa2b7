package domain

type SensorKey string

const (
	SensorQuota              SensorKey = "quota"
	SensorSpeed              SensorKey = "speed"
	SensorTotalConsumption   SensorKey = "total_consumption"
	SensorExtraConsumption   SensorKey = "extra_consumption"
	SensorLastUpdate         SensorKey = "last_update"
	SensorOutstandingBalance SensorKey = "outstanding_balance"
)

type DeviceClass string

const (
	DeviceClassNone      DeviceClass = ""
	DeviceClassTimestamp DeviceClass = "timestamp"
	DeviceClassMonetary  DeviceClass = "monetary"
)

const (
	UnitGigabytes = "GB"
	UnitLBP       = "LBP"
)

// SensorDescription carries the presentation metadata of a sensor.
type SensorDescription struct {
	Key         SensorKey   `json:"key"`
	Unit        string      `json:"unit,omitempty"`
	DeviceClass DeviceClass `json:"device_class,omitempty"`
	Precision   *int        `json:"precision,omitempty"`
	Icon        string      `json:"icon,omitempty"`
}

func precision(p int) *int {
	return &p
}

func SensorDescriptions() []SensorDescription {
	return []SensorDescription{
		{Key: SensorQuota, Unit: UnitGigabytes, Precision: precision(0), Icon: "mdi:format-quote-close"},
		{Key: SensorSpeed, Icon: "mdi:speedometer"},
		{Key: SensorTotalConsumption, Unit: UnitGigabytes, Precision: precision(1), Icon: "mdi:sigma"},
		{Key: SensorExtraConsumption, Unit: UnitGigabytes, Precision: precision(1), Icon: "mdi:alert"},
		{Key: SensorLastUpdate, DeviceClass: DeviceClassTimestamp, Icon: "mdi:update"},
	}
}

// ExtendedSensorDescriptions lists the projections that also publish attributes.
func ExtendedSensorDescriptions() []SensorDescription {
	return []SensorDescription{
		{Key: SensorOutstandingBalance, Unit: UnitLBP, DeviceClass: DeviceClassMonetary, Precision: precision(0)},
	}
}

// UniqueID is the registration key of a sensor within a host.
func UniqueID(entryID EntryID, key SensorKey) string {
	return string(entryID) + "_" + string(key)
}
