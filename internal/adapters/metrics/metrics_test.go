package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraad/ogero-sensors/internal/application"
	"github.com/oraad/ogero-sensors/internal/domain"
)

type staticStatuses []application.EntryStatus

func (s staticStatuses) Statuses() []application.EntryStatus {
	return s
}

var lastUpdate = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testStatuses() staticStatuses {
	return staticStatuses{
		{
			ID:          "entry-1",
			State:       application.EntryStateLoaded,
			LastSuccess: lastUpdate.Add(time.Hour),
			Sensors: []application.SensorState{
				{Key: domain.SensorQuota, Available: true, Value: int64(100), Unit: domain.UnitGigabytes},
				{Key: domain.SensorSpeed, Available: true, Value: "8 Mbps"},
				{Key: domain.SensorTotalConsumption, Available: true, Value: 45.5, Unit: domain.UnitGigabytes},
				{Key: domain.SensorLastUpdate, Available: true, Value: lastUpdate},
				{
					Key:        domain.SensorOutstandingBalance,
					Available:  true,
					Value:      int64(45),
					Unit:       domain.UnitLBP,
					Attributes: map[string]string{"2026-01": "LBP 1500 (UNPAID)"},
				},
			},
		},
		{
			ID:    "entry-2",
			State: application.EntryStateNeedsReauth,
			Sensors: []application.SensorState{
				{Key: domain.SensorQuota, Unit: domain.UnitGigabytes},
			},
		},
	}
}

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, family := range families {
		out[family.GetName()] = family
	}
	return out
}

func findMetric(family *dto.MetricFamily, labels map[string]string) *dto.Metric {
	for _, metric := range family.GetMetric() {
		matched := 0
		for _, pair := range metric.GetLabel() {
			if want, ok := labels[pair.GetName()]; ok && want == pair.GetValue() {
				matched++
			}
		}
		if matched == len(labels) {
			return metric
		}
	}
	return nil
}

func TestCollectorExportsNumericSensors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector(testStatuses())))

	families := gather(t, reg)

	values := families["ogero_sensor_value"]
	require.NotNil(t, values)
	assert.Len(t, values.GetMetric(), 4)

	quota := findMetric(values, map[string]string{"entry_id": "entry-1", "key": "quota", "unit": "GB"})
	require.NotNil(t, quota)
	assert.Equal(t, 100.0, quota.GetGauge().GetValue())

	total := findMetric(values, map[string]string{"key": "total_consumption"})
	require.NotNil(t, total)
	assert.Equal(t, 45.5, total.GetGauge().GetValue())

	updated := findMetric(values, map[string]string{"key": "last_update"})
	require.NotNil(t, updated)
	assert.Equal(t, float64(lastUpdate.Unix()), updated.GetGauge().GetValue())

	assert.Nil(t, findMetric(values, map[string]string{"key": "speed"}))
}

func TestCollectorExportsAvailabilityAndEntryState(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewCollector(testStatuses())))

	families := gather(t, reg)

	available := families["ogero_sensor_available"]
	require.NotNil(t, available)
	assert.Len(t, available.GetMetric(), 6)
	assert.Equal(t, 1.0, findMetric(available, map[string]string{"entry_id": "entry-1", "key": "speed"}).GetGauge().GetValue())
	assert.Equal(t, 0.0, findMetric(available, map[string]string{"entry_id": "entry-2", "key": "quota"}).GetGauge().GetValue())

	reauth := families["ogero_entry_needs_reauth"]
	require.NotNil(t, reauth)
	assert.Equal(t, 0.0, findMetric(reauth, map[string]string{"entry_id": "entry-1"}).GetGauge().GetValue())
	assert.Equal(t, 1.0, findMetric(reauth, map[string]string{"entry_id": "entry-2"}).GetGauge().GetValue())

	lastSuccess := families["ogero_entry_last_success_timestamp_seconds"]
	require.NotNil(t, lastSuccess)
	assert.Len(t, lastSuccess.GetMetric(), 1)

	attributes := families["ogero_sensor_attributes"]
	require.NotNil(t, attributes)
	assert.Equal(t, 1.0, findMetric(attributes, map[string]string{"key": "outstanding_balance"}).GetGauge().GetValue())
}

func TestCollectorWithoutEntries(t *testing.T) {
	assert.Equal(t, 0, testutil.CollectAndCount(NewCollector(staticStatuses{})))
}

func TestRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder, err := NewRecorder(reg)
	require.NoError(t, err)

	recorder.ObserveRefresh("entry-1", application.OutcomeSuccess, 150*time.Millisecond)
	recorder.ObserveRefresh("entry-1", application.OutcomeSuccess, 200*time.Millisecond)
	recorder.ObserveRefresh("entry-1", application.OutcomeAuthFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.refreshes.WithLabelValues("entry-1", application.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.refreshes.WithLabelValues("entry-1", application.OutcomeAuthFailed)))

	expected := `
# HELP ogero_refreshes_total Scheduled refreshes by entry and outcome.
# TYPE ogero_refreshes_total counter
ogero_refreshes_total{entry_id="entry-1",outcome="auth_failed"} 1
ogero_refreshes_total{entry_id="entry-1",outcome="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ogero_refreshes_total"))
}

func TestRegisterRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := Register(reg, testStatuses())
	require.NoError(t, err)

	_, err = Register(reg, testStatuses())
	assert.Error(t, err)
}
