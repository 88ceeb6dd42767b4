package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the personalized recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ashiato_recommend_latency_seconds",
		Help:    "Latency of the personalized recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ashiato_recommend_requests_total",
		Help: "Total number of recommendation requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
	)
}
