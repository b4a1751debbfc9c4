package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Search outcome labels
const (
	SearchApplied = "applied"
	SearchStale   = "stale"
	SearchFailed  = "failed"
)

// Metrics holds the client's counters on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	shelfSyncs      *prometheus.CounterVec
	searchResponses *prometheus.CounterVec
	catalogRequests *prometheus.CounterVec
	catalogLatency  *prometheus.HistogramVec
}

// New creates the counters and registers them
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		shelfSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myreads_shelf_sync_total",
			Help: "Background shelf updates sent to the catalog, by result",
		}, []string{"result"}),
		searchResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myreads_search_responses_total",
			Help: "Search responses received, by outcome (applied, stale, failed)",
		}, []string{"outcome"}),
		catalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "myreads_catalog_requests_total",
			Help: "HTTP requests made to the Books API",
		}, []string{"method", "status"}),
		catalogLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "myreads_catalog_request_duration_seconds",
			Help:    "Duration of Books API requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
	m.registry.MustRegister(m.shelfSyncs, m.searchResponses, m.catalogRequests, m.catalogLatency)
	return m
}

// ShelfSync records a background shelf update result
func (m *Metrics) ShelfSync(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.shelfSyncs.WithLabelValues(result).Inc()
}

// SearchResponse records what happened to a search response
func (m *Metrics) SearchResponse(outcome string) {
	if m == nil {
		return
	}
	m.searchResponses.WithLabelValues(outcome).Inc()
}

// CatalogRequest records one HTTP round trip. status 0 means transport failure.
func (m *Metrics) CatalogRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.catalogRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.catalogLatency.WithLabelValues(method).Observe(d.Seconds())
}

// Registry exposes the registry for tests and custom exporters
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
