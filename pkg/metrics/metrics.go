package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Order submissions by project and resulting status",
		},
		[]string{"project", "status"},
	)
	VendorRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_requests_total",
			Help: "Vendor round trips by project and result",
		},
		[]string{"project", "result"}, // eligible|ineligible|error
	)
	VendorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_request_duration_seconds",
			Help:    "Vendor round-trip latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"project"},
	)
	StateGateRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "state_gate_rejections_total",
			Help: "Submissions rejected by the blocked-state gate before any vendor call",
		},
		[]string{"project"},
	)
	PersistenceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_persistence_failures_total",
			Help: "Best-effort order record writes that failed",
		},
		[]string{"project"},
	)
	OutcomeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outcome_events_total",
			Help: "Order outcome events by publish result",
		},
		[]string{"result"}, // published|failed
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		OrdersSubmitted, VendorRequests, VendorRequestDuration,
		StateGateRejections, PersistenceFailures, OutcomeEvents,
		CacheOps, CacheSize,
	)
}
