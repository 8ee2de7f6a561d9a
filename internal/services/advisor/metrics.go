package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics instruments the facade. Nothing is served here; the caller decides
// whether the Registerer ever backs an exposition endpoint.
type metrics struct {
	analyses     prometheus.Counter
	failures     prometheus.Counter
	issues       *prometheus.CounterVec
	deficiencies prometheus.Counter
	duration     prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &metrics{
		analyses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "soilcore",
			Name:      "analyses_total",
			Help:      "Soil analyses run through the advisor",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "soilcore",
			Name:      "analysis_failures_total",
			Help:      "Analyses rejected for invalid input",
		}),
		issues: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soilcore",
			Name:      "validation_issues_total",
			Help:      "Validation issues found, by severity",
		}, []string{"severity"}),
		deficiencies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "soilcore",
			Name:      "deficiencies_total",
			Help:      "Soil deficiencies identified",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "soilcore",
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one full analysis",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
