package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	// Report run metrics
	ReportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viewstats_report_runs_total",
			Help: "Total report runs by terminal status",
		},
		[]string{"status"},
	)

	ReportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "viewstats_report_duration_seconds",
			Help:    "Report run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	// Session metrics
	SessionsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_sessions_processed_total",
			Help: "Sessions whose usage was fetched and aggregated",
		},
	)

	SessionsSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_sessions_skipped_total",
			Help: "Sessions skipped because their usage fetch failed",
		},
	)

	SessionsNoActivity = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_sessions_no_activity_total",
			Help: "Sessions with zero usage events in the report window",
		},
	)

	// Pagination metrics
	SessionPagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_session_pages_fetched_total",
			Help: "Session list pages retrieved from the remote service",
		},
	)

	UsagePagesFetched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_usage_pages_fetched_total",
			Help: "Detailed usage pages retrieved from the remote service",
		},
	)

	// Username resolution metrics
	UsernameCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_username_cache_hits_total",
			Help: "Username resolutions served from cache",
		},
	)

	UsernameCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_username_cache_misses_total",
			Help: "Username resolutions requiring a remote lookup",
		},
	)

	UsernameLookupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "viewstats_username_lookup_failures_total",
			Help: "Remote user lookups that failed or returned no name",
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(
		ReportRuns,
		ReportDuration,
		SessionsProcessed,
		SessionsSkipped,
		SessionsNoActivity,
		SessionPagesFetched,
		UsagePagesFetched,
		UsernameCacheHits,
		UsernameCacheMisses,
		UsernameLookupFailures,
	)
}

// Server is the metrics HTTP server
type Server struct {
	server *http.Server
	logger zerolog.Logger
}

// NewServer creates a new metrics server
func NewServer(addr string, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger: logger.With().Str("component", "metrics").Logger(),
	}
}

// Start starts the metrics server
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting metrics server")
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
	return nil
}

// Stop stops the metrics server
func (s *Server) Stop() error {
	s.logger.Info().Msg("Stopping metrics server")
	return s.server.Close()
}
