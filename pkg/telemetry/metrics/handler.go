package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler exposing the registered collectors in the
// Prometheus exposition format. Mount it at "/metrics".
//
// Example:
//
//	m := metrics.NewMetrics(nil, nil)
//	http.Handle("/metrics", m.Handler())
//	http.ListenAndServe(":9090", nil)
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(
		m.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

// HandlerWithOptions returns an HTTP handler with caller-supplied scrape
// options, for deployments that need a collection timeout or a bound on
// concurrent scrapes.
//
// Example:
//
//	handler := m.HandlerWithOptions(promhttp.HandlerOpts{
//		Timeout:             10 * time.Second,
//		MaxRequestsInFlight: 5,
//	})
func (m *Metrics) HandlerWithOptions(opts promhttp.HandlerOpts) http.Handler {
	return promhttp.HandlerFor(m.registry, opts)
}
