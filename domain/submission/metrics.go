package submission

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSaved  = "saved"
	outcomeFailed = "failed"
)

// Recorder observes submission outcomes.
type Recorder interface {
	Observe(category Category, outcome string)
}

type promRecorder struct {
	submissions *prometheus.CounterVec
}

// NewPrometheusRecorder registers lead_submissions_total on reg. A nil
// registerer yields a nil Recorder, which the service treats as disabled.
func NewPrometheusRecorder(reg prometheus.Registerer) (Recorder, error) {
	if reg == nil {
		return nil, nil
	}

	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of lead submissions by category and outcome.",
		},
		[]string{"category", "outcome"},
	)

	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return &promRecorder{submissions: existing}, nil
			}
		}
		return nil, err
	}

	return &promRecorder{submissions: counter}, nil
}

func (r *promRecorder) Observe(category Category, outcome string) {
	r.submissions.WithLabelValues(string(category), outcome).Inc()
}
