package application

import (
	"errors"
	"time"

	"github.com/oraad/ogero-sensors/internal/domain"
)

type EntryState string

const (
	EntryStateLoaded      EntryState = "loaded"
	EntryStateNeedsReauth EntryState = "needs_reauth"
	EntryStateNotReady    EntryState = "not_ready"
	EntryStateFailed      EntryState = "setup_failed"
)

// EntryStatus is the read model of one entry for renderers and the HTTP API.
type EntryStatus struct {
	Entry       domain.ConfigEntry `json:"-"`
	ID          domain.EntryID     `json:"entry_id"`
	Title       string             `json:"title"`
	State       EntryState         `json:"state"`
	Device      *domain.DeviceInfo `json:"device,omitempty"`
	LastSuccess time.Time          `json:"last_success,omitempty"`
	LastError   string             `json:"last_error,omitempty"`
	Sensors     []SensorState      `json:"sensors"`
}

func RuntimeStatus(runtime *Runtime) EntryStatus {
	device := runtime.Device
	status := EntryStatus{
		Entry:       runtime.Entry,
		ID:          runtime.Entry.ID,
		Title:       runtime.Entry.Title,
		State:       EntryStateLoaded,
		Device:      &device,
		LastSuccess: runtime.Coordinator.LastSuccess(),
		Sensors:     make([]SensorState, 0, len(runtime.Sensors)),
	}
	if runtime.Coordinator.NeedsReauth() {
		status.State = EntryStateNeedsReauth
	}
	if err := runtime.Coordinator.LastError(); err != nil {
		status.LastError = err.Error()
	}
	for _, sensor := range runtime.Sensors {
		status.Sensors = append(status.Sensors, sensor.State())
	}

	return status
}

// SetupFailedStatus describes an entry whose setup returned err.
func SetupFailedStatus(entry domain.ConfigEntry, err error) EntryStatus {
	state := EntryStateFailed
	switch {
	case errors.Is(err, ErrAuthFailed):
		state = EntryStateNeedsReauth
	case errors.Is(err, ErrNotReady):
		state = EntryStateNotReady
	}

	return EntryStatus{
		Entry:     entry,
		ID:        entry.ID,
		Title:     entry.Title,
		State:     state,
		LastError: err.Error(),
		Sensors:   []SensorState{},
	}
}
