// Package httpapi serves entry statuses and sensor states as JSON.
package httpapi

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/oraad/ogero-sensors/internal/application"
	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
	"github.com/oraad/ogero-sensors/internal/version"
)

type StatusSource interface {
	Statuses() []application.EntryStatus
}

type Options struct {
	Source StatusSource
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Clock   ports.Clock
	Log     zerolog.Logger
}

type handler struct {
	source    StatusSource
	clock     ports.Clock
	startTime time.Time
}

type healthResponse struct {
	Status             string  `json:"status"`
	Version            string  `json:"version"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
	Entries            int     `json:"entries"`
	EntriesNeedReauth  int     `json:"entries_need_reauth"`
	EntriesUnavailable int     `json:"entries_unavailable"`
}

type sensorsResponse struct {
	Attribution string                    `json:"attribution"`
	Entries     []application.EntryStatus `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler routes /health, /api/sensors and /api/entries/{id}.
func NewHandler(opts Options) http.Handler {
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	h := &handler{source: opts.Source, clock: opts.Clock, startTime: opts.Clock.Now()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /api/sensors", h.sensors)
	mux.HandleFunc("GET /api/entries/{id}", h.entry)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}

	return logRequests(opts.Log.With().Str("component", "httpapi").Logger(), mux)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	statuses := h.source.Statuses()
	resp := healthResponse{
		Status:        "ok",
		Version:       version.Version,
		UptimeSeconds: h.clock.Now().Sub(h.startTime).Seconds(),
		Entries:       len(statuses),
	}
	for _, status := range statuses {
		if status.State == application.EntryStateNeedsReauth {
			resp.EntriesNeedReauth++
		}
		if status.LastError != "" {
			resp.EntriesUnavailable++
		}
	}
	if resp.EntriesNeedReauth > 0 || resp.EntriesUnavailable > 0 {
		resp.Status = "degraded"
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) sensors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sensorsResponse{
		Attribution: domain.Attribution,
		Entries:     h.source.Statuses(),
	})
}

func (h *handler) entry(w http.ResponseWriter, r *http.Request) {
	id := domain.EntryID(r.PathValue("id"))
	for _, status := range h.source.Statuses() {
		if status.ID == id {
			writeJSON(w, http.StatusOK, status)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, errorResponse{Error: "entry not loaded"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}
