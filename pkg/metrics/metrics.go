// Package metrics provides Prometheus instrumentation for the submission
// pipeline. The core engine works without it; attach a SubmitObserver via
// form.WithObserver when running in an instrumented process.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formflow/pkg/form"
)

// SubmitObserver records submit attempts by outcome plus attempt duration.
type SubmitObserver struct {
	attempts *prometheus.CounterVec
	duration prometheus.Histogram
}

var _ form.Observer = (*SubmitObserver)(nil)

// NewSubmitObserver builds the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer for process-wide metrics or a private registry
// in tests.
func NewSubmitObserver(reg prometheus.Registerer) (*SubmitObserver, error) {
	o := &SubmitObserver{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formflow_submit_attempts_total",
				Help: "Submit attempts partitioned by outcome status.",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "formflow_submit_duration_seconds",
				Help:    "Wall-clock duration of submit attempts.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	for _, collector := range []prometheus.Collector{o.attempts, o.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MustNewSubmitObserver panics on registration failure. Useful for init-time
// wiring.
func MustNewSubmitObserver(reg prometheus.Registerer) *SubmitObserver {
	o, err := NewSubmitObserver(reg)
	if err != nil {
		panic(err)
	}
	return o
}

// ObserveSubmit implements form.Observer.
func (o *SubmitObserver) ObserveSubmit(status form.Status, elapsed time.Duration) {
	o.attempts.WithLabelValues(string(status)).Inc()
	o.duration.Observe(elapsed.Seconds())
}
