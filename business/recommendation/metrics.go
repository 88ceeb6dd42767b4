package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InteractionsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ashiato_interactions_recorded_total",
			Help: "Count of recorded spot interactions by interaction type.",
		},
		[]string{"interaction_type"},
	)
)

func init() {
	prometheus.MustRegister(InteractionsRecordedTotal)
}
