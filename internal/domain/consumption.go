package domain

import "time"

// Consumption is the upstream usage record of one account. Volumes are in GB.
type Consumption struct {
	Quota            int64
	Speed            string
	TotalConsumption float64
	ExtraConsumption float64
	LastUpdate       time.Time
}
