// Package monitoring provides Prometheus metrics for the engine.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	recommendationsServed prometheus.Counter
	swipesRecorded        *prometheus.CounterVec
	achievementsUnlocked  prometheus.Counter
	profileCacheHits      prometheus.Counter
	profileCacheMisses    prometheus.Counter
	inferenceFailures     prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewMetrics creates the engine's metric set on its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		recommendationsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savorly_recommendations_served_total",
			Help: "Recipes served in recommendation feeds",
		}),
		swipesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "savorly_swipes_recorded_total",
			Help: "Swipes recorded, by direction",
		}, []string{"direction"}),
		achievementsUnlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savorly_achievements_unlocked_total",
			Help: "Achievement unlocks written",
		}),
		profileCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savorly_profile_cache_hits_total",
			Help: "Preference profile cache hits",
		}),
		profileCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savorly_profile_cache_misses_total",
			Help: "Preference profile cache misses",
		}),
		inferenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "savorly_inference_failures_total",
			Help: "External inference calls that failed or returned garbage",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "savorly_http_requests_total",
			Help: "HTTP requests by method, path, and status",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "savorly_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	registry.MustRegister(
		m.recommendationsServed,
		m.swipesRecorded,
		m.achievementsUnlocked,
		m.profileCacheHits,
		m.profileCacheMisses,
		m.inferenceFailures,
		m.httpRequests,
		m.httpDuration,
	)

	return m
}

// RecommendationsServed counts recipes returned in a feed response.
func (m *Metrics) RecommendationsServed(n int) {
	m.recommendationsServed.Add(float64(n))
}

// SwipeRecorded counts one recorded swipe by direction.
func (m *Metrics) SwipeRecorded(direction string) {
	m.swipesRecorded.WithLabelValues(direction).Inc()
}

// AchievementsUnlocked counts newly unlocked achievements.
func (m *Metrics) AchievementsUnlocked(n int) {
	m.achievementsUnlocked.Add(float64(n))
}

// ProfileCacheHit counts one preference cache hit.
func (m *Metrics) ProfileCacheHit() { m.profileCacheHits.Inc() }

// ProfileCacheMiss counts one preference cache miss.
func (m *Metrics) ProfileCacheMiss() { m.profileCacheMisses.Inc() }

// InferenceFailure counts one failed preference analysis call.
func (m *Metrics) InferenceFailure() { m.inferenceFailures.Inc() }

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HTTPMiddleware records request counts and latency per path.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		m.httpRequests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(wrapped.status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
