// Package metrics exposes sensor states and refresh outcomes to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oraad/ogero-sensors/internal/application"
)

const namespace = "ogero"

// StatusSource is satisfied by *application.Integration.
type StatusSource interface {
	Statuses() []application.EntryStatus
}

// Collector publishes the current sensor states on every scrape.
type Collector struct {
	source StatusSource

	valueDesc       *prometheus.Desc
	availableDesc   *prometheus.Desc
	needsReauthDesc *prometheus.Desc
	lastSuccessDesc *prometheus.Desc
	attributesDesc  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(source StatusSource) *Collector {
	sensorLabels := []string{"entry_id", "key"}
	entryLabels := []string{"entry_id"}

	return &Collector{
		source: source,
		valueDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sensor", "value"),
			"Numeric sensor state. Timestamps are exported as unix seconds.",
			append(sensorLabels, "unit"),
			nil,
		),
		availableDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sensor", "available"),
			"Whether the sensor has a value (1) or not (0).",
			sensorLabels,
			nil,
		),
		needsReauthDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "entry", "needs_reauth"),
			"Whether the entry is waiting for re-authentication.",
			entryLabels,
			nil,
		),
		lastSuccessDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "entry", "last_success_timestamp_seconds"),
			"Unix time of the last successful refresh.",
			entryLabels,
			nil,
		),
		attributesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "sensor", "attributes"),
			"Number of attributes published by the sensor.",
			sensorLabels,
			nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.valueDesc
	ch <- c.availableDesc
	ch <- c.needsReauthDesc
	ch <- c.lastSuccessDesc
	ch <- c.attributesDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, status := range c.source.Statuses() {
		entryID := string(status.ID)

		ch <- prometheus.MustNewConstMetric(c.needsReauthDesc, prometheus.GaugeValue, boolValue(status.State == application.EntryStateNeedsReauth), entryID)
		if !status.LastSuccess.IsZero() {
			ch <- prometheus.MustNewConstMetric(c.lastSuccessDesc, prometheus.GaugeValue, float64(status.LastSuccess.Unix()), entryID)
		}

		for _, sensor := range status.Sensors {
			key := string(sensor.Key)
			ch <- prometheus.MustNewConstMetric(c.availableDesc, prometheus.GaugeValue, boolValue(sensor.Available), entryID, key)
			if sensor.Attributes != nil {
				ch <- prometheus.MustNewConstMetric(c.attributesDesc, prometheus.GaugeValue, float64(len(sensor.Attributes)), entryID, key)
			}
			if !sensor.Available {
				continue
			}
			if value, ok := numericValue(sensor.Value); ok {
				ch <- prometheus.MustNewConstMetric(c.valueDesc, prometheus.GaugeValue, value, entryID, key, sensor.Unit)
			}
		}
	}
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case time.Time:
		if v.IsZero() {
			return 0, false
		}
		return float64(v.Unix()), true
	default:
		return 0, false
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
