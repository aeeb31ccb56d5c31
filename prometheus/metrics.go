package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Sign-in counter
	LoginCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_login_total",
			Help: "Total number of sign-in attempts",
		},
		[]string{"result"}, // "success", "failed"
	)

	// Invite operation counter
	InviteOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_invite_operations_total",
			Help: "Total number of invite ledger operations",
		},
		[]string{"operation"}, // "create", "update", "delete", "consume"
	)

	// Site operation counter
	SiteOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_site_operations_total",
			Help: "Total number of site directory operations",
		},
		[]string{"operation"},
	)

	// Feature toggle counter
	FeatureOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_feature_operations_total",
			Help: "Total number of feature gate operations",
		},
		[]string{"operation"},
	)

	// Content operation counter by resource type
	ContentOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_content_operations_total",
			Help: "Total number of content CRUD operations",
		},
		[]string{"resource", "operation"},
	)

	// Public read counter
	PublicReadCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_public_reads_total",
			Help: "Total number of public API reads by endpoint",
		},
		[]string{"endpoint"},
	)

	// Public cache hit/miss counter
	PublicCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_public_cache_total",
			Help: "Public API cache hits and misses",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_auth_errors_total",
			Help: "Total number of authentication and authorization errors",
		},
		[]string{"type"}, // "missing_token", "session_expired", "forbidden", etc.
	)

	// Social stat refresh counter
	StatRefreshCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_stat_refresh_total",
			Help: "Total number of social stat refresh attempts",
		},
		[]string{"result"}, // "ok", "failed", "fresh"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cms_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cms_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Active sites
	ActiveSitesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cms_active_sites",
			Help: "Number of sites in the directory",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cms_info",
			Help: "Information about the CMS service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(InviteOperationCounter)
	prometheus.MustRegister(SiteOperationCounter)
	prometheus.MustRegister(FeatureOperationCounter)
	prometheus.MustRegister(ContentOperationCounter)
	prometheus.MustRegister(PublicReadCounter)
	prometheus.MustRegister(PublicCacheCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(StatRefreshCounter)
	prometheus.MustRegister(HTTPRequestCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(ActiveSitesGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// RecordInviteOperation increments the invite operation counter
func RecordInviteOperation(operation string) {
	InviteOperationCounter.WithLabelValues(operation).Inc()
}

// RecordSiteOperation increments the site operation counter
func RecordSiteOperation(operation string) {
	SiteOperationCounter.WithLabelValues(operation).Inc()
}

// RecordFeatureOperation increments the feature operation counter
func RecordFeatureOperation(operation string) {
	FeatureOperationCounter.WithLabelValues(operation).Inc()
}

// RecordContentOperation increments the content operation counter
func RecordContentOperation(resource, operation string) {
	ContentOperationCounter.WithLabelValues(resource, operation).Inc()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}
