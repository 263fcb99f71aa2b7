package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oraad/ogero-sensors/internal/application"
	"github.com/oraad/ogero-sensors/internal/domain"
)

// Recorder counts scheduled refreshes by outcome.
type Recorder struct {
	refreshes *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ application.RefreshRecorder = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Scheduled refreshes by entry and outcome.",
		}, []string{"entry_id", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of scheduled refreshes.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}

	for _, collector := range []prometheus.Collector{r.refreshes, r.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) ObserveRefresh(entryID domain.EntryID, outcome string, elapsed time.Duration) {
	r.refreshes.WithLabelValues(string(entryID), outcome).Inc()
	r.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Register adds the sensor collector and a refresh recorder to reg.
func Register(reg prometheus.Registerer, source StatusSource) (*Recorder, error) {
	if err := reg.Register(NewCollector(source)); err != nil {
		return nil, err
	}
	return NewRecorder(reg)
}
