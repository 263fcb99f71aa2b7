package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oraad/ogero-sensors/internal/application"
	"github.com/oraad/ogero-sensors/internal/domain"
	"github.com/oraad/ogero-sensors/internal/ports"
	"github.com/oraad/ogero-sensors/internal/ports/mocks"
)

type staticStatuses []application.EntryStatus

func (s staticStatuses) Statuses() []application.EntryStatus {
	return s
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	current := c.now
	c.now = c.now.Add(30 * time.Second)
	return current
}

func testStatuses() staticStatuses {
	return staticStatuses{
		{
			ID:    "entry-1",
			Title: "L1234|01234567",
			State: application.EntryStateLoaded,
			Sensors: []application.SensorState{
				{UniqueID: "entry-1_quota", Key: domain.SensorQuota, Available: true, Value: int64(100), Unit: domain.UnitGigabytes},
				{
					UniqueID:   "entry-1_outstanding_balance",
					Key:        domain.SensorOutstandingBalance,
					Available:  true,
					Value:      int64(45),
					Attributes: map[string]string{"2026-01": "LBP 1500 (UNPAID)"},
				},
			},
		},
		{ID: "entry-2", Title: "L9|09", State: application.EntryStateNeedsReauth, LastError: "authentication failed"},
	}
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthReportsDegradedEntries(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	h := NewHandler(Options{Source: testStatuses(), Clock: clock, Log: zerolog.Nop()})

	rec := serve(t, h, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, 2, body.Entries)
	assert.Equal(t, 1, body.EntriesNeedReauth)
	assert.Equal(t, 1, body.EntriesUnavailable)
	assert.Equal(t, 30.0, body.UptimeSeconds)
}

func TestHealthOKWithoutProblems(t *testing.T) {
	h := NewHandler(Options{Source: staticStatuses{}})

	rec := serve(t, h, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSensorsListsAllEntries(t *testing.T) {
	h := NewHandler(Options{Source: testStatuses()})

	rec := serve(t, h, "/api/sensors")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Attribution string `json:"attribution"`
		Entries     []struct {
			EntryID string `json:"entry_id"`
			State   string `json:"state"`
			Sensors []struct {
				UniqueID   string            `json:"unique_id"`
				Available  bool              `json:"available"`
				Value      any               `json:"value"`
				Attributes map[string]string `json:"attributes"`
			} `json:"sensors"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.Attribution, body.Attribution)
	require.Len(t, body.Entries, 2)
	assert.Equal(t, "entry-1", body.Entries[0].EntryID)
	require.Len(t, body.Entries[0].Sensors, 2)
	assert.Equal(t, "entry-1_quota", body.Entries[0].Sensors[0].UniqueID)
	assert.Equal(t, 100.0, body.Entries[0].Sensors[0].Value)
	assert.Equal(t, "LBP 1500 (UNPAID)", body.Entries[0].Sensors[1].Attributes["2026-01"])
	assert.Equal(t, "needs_reauth", body.Entries[1].State)
}

func TestEntryByID(t *testing.T) {
	h := NewHandler(Options{Source: testStatuses()})

	rec := serve(t, h, "/api/entries/entry-2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"entry_id":"entry-2"`)
	assert.Contains(t, rec.Body.String(), `"last_error":"authentication failed"`)

	rec = serve(t, h, "/api/entries/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "entry not loaded")
}

func TestMetricsMountedOnlyWhenConfigured(t *testing.T) {
	without := NewHandler(Options{Source: staticStatuses{}})
	assert.Equal(t, http.StatusNotFound, serve(t, without, "/metrics").Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ogero_refreshes_total 1\n"))
	})
	with := NewHandler(Options{Source: staticStatuses{}, Metrics: metrics})
	rec := serve(t, with, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ogero_refreshes_total")
}

func TestRejectsOtherMethods(t *testing.T) {
	h := NewHandler(Options{Source: staticStatuses{}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sensors", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthReportsEntriesThatFailedSetup(t *testing.T) {
	portal := mocks.NewMockPortal(t)
	portal.EXPECT().Login(mock.Anything).Return(false, nil).Once()
	integration := application.NewIntegration(application.IntegrationOptions{
		Portals: func(string, string) ports.Portal { return portal },
		Log:     zerolog.Nop(),
	})
	t.Cleanup(integration.Close)

	entry := domain.ConfigEntry{
		ID:    "entry-1",
		Title: "L1234|01234567",
		Data:  domain.EntryData{Username: "user@example.com", Password: "rotated", Account: "L1234|01234567"},
	}
	_, err := integration.SetupEntry(context.Background(), entry)
	require.ErrorIs(t, err, application.ErrAuthFailed)

	h := NewHandler(Options{Source: integration})

	var health healthResponse
	require.NoError(t, json.Unmarshal(serve(t, h, "/health").Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, 1, health.Entries)
	assert.Equal(t, 1, health.EntriesNeedReauth)

	rec := serve(t, h, "/api/entries/entry-1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"needs_reauth"`)
}
