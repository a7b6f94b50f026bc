// Package metrics provides Prometheus metrics for the ranking, the draw and the dashboard.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the registry and every metric.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	playersRanked *prometheus.CounterVec
	rankingErrors prometheus.Counter

	drawsCompleted   prometheus.Counter
	drawsInfeasible  prometheus.Counter
	playersDrawn     *prometheus.CounterVec
	drawShortfall    *prometheus.GaugeVec
	resultsFetched   prometheus.Counter
	resultsFetchErrs prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the request duration histogram
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets the registry metrics are registered on
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a manager on its own registry, with Go runtime collectors
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "interclubs",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	auto := promauto.With(m.registry)

	m.playersRanked = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "players_ranked_total",
		Help:      "Total number of participating players ranked, by gender",
	}, []string{"genre"})

	m.rankingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "errors_total",
		Help:      "Total number of failed rankings",
	})

	m.drawsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "draw",
		Name:      "completed_total",
		Help:      "Total number of draws stored",
	})

	m.drawsInfeasible = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "draw",
		Name:      "infeasible_total",
		Help:      "Total number of draws refused for lack of players",
	})

	m.playersDrawn = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "draw",
		Name:      "players_drawn_total",
		Help:      "Total number of players drawn into teams, by category",
	}, []string{"category"})

	m.drawShortfall = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "draw",
		Name:      "shortfall_players",
		Help:      "Players missing at the last feasibility check, by gender",
	}, []string{"genre"})

	m.resultsFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "results",
		Name:      "teams_fetched_total",
		Help:      "Total number of team result pages fetched",
	})

	m.resultsFetchErrs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "results",
		Name:      "fetch_errors_total",
		Help:      "Total number of failed result fetches",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method", "status_code"})

	return m
}

// Registry returns the registry the metrics are registered on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordPlayersRanked adds the players ranked for a gender
func (m *Manager) RecordPlayersRanked(genre string, count int) {
	if m == nil {
		return
	}
	m.playersRanked.WithLabelValues(genre).Add(float64(count))
}

// RecordRankingError increments the failed rankings counter
func (m *Manager) RecordRankingError() {
	if m == nil {
		return
	}
	m.rankingErrors.Inc()
}

// RecordDraw increments the completed draws counter and the players drawn per category
func (m *Manager) RecordDraw(playersByCategory map[string]int) {
	if m == nil {
		return
	}
	m.drawsCompleted.Inc()
	for category, count := range playersByCategory {
		m.playersDrawn.WithLabelValues(category).Add(float64(count))
	}
	m.drawShortfall.Reset()
}

// RecordInfeasibleDraw increments the refused draws counter and records the shortfall
func (m *Manager) RecordInfeasibleDraw(women, men int) {
	if m == nil {
		return
	}
	m.drawsInfeasible.Inc()
	m.drawShortfall.WithLabelValues("women").Set(float64(women))
	m.drawShortfall.WithLabelValues("men").Set(float64(men))
}

// RecordTeamFetched increments the fetched team pages counter
func (m *Manager) RecordTeamFetched() {
	if m == nil {
		return
	}
	m.resultsFetched.Inc()
}

// RecordFetchError increments the failed fetches counter
func (m *Manager) RecordFetchError() {
	if m == nil {
		return
	}
	m.resultsFetchErrs.Inc()
}

// RecordHTTPRequest records a served request and its duration in seconds
func (m *Manager) RecordHTTPRequest(route, method, statusCode string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(seconds)
}
