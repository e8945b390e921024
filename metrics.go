package transmission

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded in the outcome label.
const (
	outcomeSuccess      = "success"
	outcomeFailure      = "failure" // decoded, result != "success"
	outcomeUnauthorized = "unauthorized"
	outcomeError        = "error"
)

type metrics struct {
	requests   *prometheus.CounterVec
	challenges prometheus.Counter
	duration   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transmission",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPC calls by remote method and outcome.",
		}, []string{"method", "outcome"}),
		challenges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "transmission",
			Subsystem: "rpc",
			Name:      "session_challenges_total",
			Help:      "409 session id challenges answered.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transmission",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Wall time of one RPC call including challenge retries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	var err error
	if m.requests, err = registerOrReuse(reg, m.requests); err != nil {
		return nil, err
	}
	if m.challenges, err = registerOrReuse(reg, m.challenges); err != nil {
		return nil, err
	}
	if m.duration, err = registerOrReuse(reg, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse lets several clients share one registry.
func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *metrics) observe(method string, start time.Time, resp *Response, err error) {
	if m == nil {
		return
	}
	outcome := outcomeError
	switch {
	case err == nil && resp.OK():
		outcome = outcomeSuccess
	case err == nil:
		outcome = outcomeFailure
	case errors.Is(err, ErrUnauthorized):
		outcome = outcomeUnauthorized
	}
	m.requests.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (m *metrics) challenge() {
	if m == nil {
		return
	}
	m.challenges.Inc()
}
