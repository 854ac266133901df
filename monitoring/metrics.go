package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boothbuzz_store_operations_total",
			Help: "Remote store calls by table, operation and outcome",
		},
		[]string{"table", "operation", "status"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boothbuzz_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boothbuzz_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	formSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boothbuzz_form_submissions_total",
			Help: "Form submissions by entity and final state",
		},
		[]string{"entity", "state"},
	)

	compensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boothbuzz_compensations_total",
			Help: "Compensating undo steps after partial multi-step failures",
		},
		[]string{"step", "status"},
	)
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveStore counts one remote store call.
func ObserveStore(table, operation string, err error) {
	storeOperations.WithLabelValues(table, operation, outcome(err)).Inc()
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(route, method string, code int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveForm counts a form submission that reached a final state.
func ObserveForm(entity, state string) {
	formSubmissions.WithLabelValues(entity, state).Inc()
}

// ObserveCompensation counts an attempted undo of a first step.
func ObserveCompensation(step string, err error) {
	compensations.WithLabelValues(step, outcome(err)).Inc()
}
