package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rcadmin_upstream_requests_total",
			Help: "Upstream customer API calls by method and status code",
		},
		[]string{"method", "code"}, // code is "error" on transport failure
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rcadmin_upstream_request_duration_seconds",
			Help:    "Latency of upstream customer API calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method"},
	)
)

// MustRegister registers the collectors on r. Registering twice on the same registry is tolerated.
func MustRegister(r prometheus.Registerer) {
	for _, c := range []prometheus.Collector{UpstreamRequestsTotal, UpstreamRequestDuration} {
		if err := r.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			panic(err)
		}
	}
}
