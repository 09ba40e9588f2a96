package converter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts records flowing through conversions. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	RecordsRead    prometheus.Counter
	RecordsEmitted prometheus.Counter
	RecordsSkipped *prometheus.CounterVec
}

// NewMetrics registers the converter counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "lhconvert_records_read_total",
			Help: "Location records read from the input",
		}),
		RecordsEmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "lhconvert_records_emitted_total",
			Help: "Location records written to the output",
		}),
		RecordsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lhconvert_records_skipped_total",
			Help: "Location records dropped, by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) read() {
	if m != nil {
		m.RecordsRead.Inc()
	}
}

func (m *Metrics) emitted() {
	if m != nil {
		m.RecordsEmitted.Inc()
	}
}

func (m *Metrics) skipped(reason string) {
	if m != nil {
		m.RecordsSkipped.WithLabelValues(reason).Inc()
	}
}
