// Package metrics exports the module's Prometheus instruments and the HTTP
// middleware that feeds them.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: "tideline",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)
	cacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "cache_results",
			Subsystem: "tideline",
			Help:      "Response cache hits and misses by path.",
		},
		[]string{"path", "result"},
	)
	upstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "upstream_errors",
			Subsystem: "tideline",
			Help:      "Failures talking to the CO-OPS APIs by path.",
		},
		[]string{"path"},
	)
	userRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "user_requests",
			Subsystem: "tideline",
			Help:      "Requests from sessions, by saved user id.",
		},
		[]string{"user"},
	)
)

func init() {
	prometheus.MustRegister(
		requestLatency,
		cacheResults,
		upstreamErrors,
		userRequests,
	)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// CountCacheHit and CountCacheMiss track how the response cache is doing.
func CountCacheHit(path string) {
	cacheResults.With(prometheus.Labels{"path": path, "result": "hit"}).Inc()
}

func CountCacheMiss(path string) {
	cacheResults.With(prometheus.Labels{"path": path, "result": "miss"}).Inc()
}

// CountUpstreamError records a failed CO-OPS request behind path.
func CountUpstreamError(path string) {
	upstreamErrors.With(prometheus.Labels{"path": path}).Inc()
}

// ObserveUserRequest counts a request against the session's saved user id,
// or "anonymous" when the session has none.
func ObserveUserRequest(id any) {
	user := "anonymous"
	if id != nil {
		user = fmt.Sprint(id)
	}
	userRequests.With(prometheus.Labels{"user": user}).Inc()
}

// statusRecorder remembers the status a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// LatencyHandler times every request. Panics in next are reported as 500
// errors and then re-thrown.
func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, strconv.Itoa(sr.status), time.Since(t).Seconds())
		}()

		next.ServeHTTP(sr, r)
	})
}
