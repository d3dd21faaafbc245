package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})

	PostOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "post_operations_total",
		Help: "Total number of post create/edit/delete operations by outcome",
	}, []string{"operation", "outcome"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Total number of login attempts",
	}, []string{"outcome"})

	RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "page_render_seconds",
		Help: "Time taken to render server-side pages",
	}, []string{"page"})

	PanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "panics_recovered_total",
		Help: "Total number of panics recovered by the request middleware",
	})
)
