// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts HTTP requests by route, method and status.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of http requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)

	// JobsCreatedTotal counts listings accepted through Create.
	JobsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_created_total",
			Help: "Total number of job listings created.",
		},
	)

	// JobsDeletedTotal counts removed listings by reason (owner/expired).
	JobsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_deleted_total",
			Help: "Total number of job listings deleted.",
		},
		[]string{"reason"},
	)
)
