package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the "result" label.
const (
	AppRequests          = "app_requests_total"
	UserCreated          = "user_created_total"
	UserUpdated          = "user_updated_total"
	UserDeleted          = "user_deleted_total"
	BinaryContentCreated = "binary_content_created_total"
	BinaryContentDeleted = "binary_content_deleted_total"
	EventDropped         = "event_dropped_total"
)

// NewCounter registers the general counter on reg, or on the default
// registry when reg is nil.
func NewCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "userpresence",
			Name:      "general_counters",
			Help:      "Counts served requests and user aggregate changes by result.",
		},
		[]string{"result"})
}
