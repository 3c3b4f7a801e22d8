package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "site"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// ContentFetches counts gateway fetches by outcome: hit, miss, bypass, error.
	ContentFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Subsystem: "content", Name: "fetches_total", Help: "Content fetches by cache outcome."},
		[]string{"outcome"},
	)
	ContentFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: namespace, Subsystem: "content", Name: "fetch_duration_seconds", Help: "Latency of content store round trips.", Buckets: prometheus.DefBuckets},
	)
	Revalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "revalidations_total", Help: "Revalidation webhook calls by result."},
		[]string{"result"},
	)
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "contact_submissions_total", Help: "Contact form submissions by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContentFetches)
	reg.MustRegister(ContentFetchDuration)
	reg.MustRegister(Revalidations)
	reg.MustRegister(ContactSubmissions)
}
