package indexer

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the indexer's Prometheus collectors.
type Metrics struct {
	Files          *prometheus.CounterVec
	SlidersDropped prometheus.Counter
	SlidersClamped prometheus.Counter
	Duration       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bodygen_files_total",
				Help: "Files processed by kind (preset, tri) and status (ok, invalid, error).",
			},
			[]string{"kind", "status"},
		),
		SlidersDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bodygen_sliders_dropped_total",
			Help: "Preset sliders removed because the catalog does not know them.",
		}),
		SlidersClamped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bodygen_sliders_clamped_total",
			Help: "Preset slider values corrected into the catalog range.",
		}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bodygen_file_duration_seconds",
				Help:    "Time spent reading and processing one file.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Files, m.SlidersDropped, m.SlidersClamped, m.Duration)
	}
	return m
}
