package telemetry

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "garments_erp"

// Metrics holds the Prometheus collectors of the server on a private registry
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	journalEntries      *prometheus.CounterVec
	cashBookTxns        *prometheus.CounterVec
	trialBalances       *prometheus.CounterVec
	trialBalanceSeconds prometheus.Histogram
	cacheRequests       *prometheus.CounterVec
	loginAttempts       *prometheus.CounterVec
	importRows          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "http", Name: "inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		journalEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "finance", Name: "journal_entries_total",
			Help: "Journal entry state changes by action.",
		}, []string{"action", "type"}),
		cashBookTxns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "finance", Name: "cashbook_transactions_total",
			Help: "Cash book transactions saved by direction.",
		}, []string{"direction"}),
		trialBalances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "finance", Name: "trial_balances_generated_total",
			Help: "Trial balance reports generated by status.",
		}, []string{"status"}),
		trialBalanceSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "finance", Name: "trial_balance_duration_seconds",
			Help:    "Time to generate a trial balance report.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "requests_total",
			Help: "Cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "finance", Name: "import_rows_total",
			Help: "Cash book import rows by result.",
		}, []string{"result"}),
	}
	m.Registry.MustRegister(
		m.httpInFlight, m.httpRequests, m.httpDuration,
		m.journalEntries, m.cashBookTxns, m.trialBalances, m.trialBalanceSeconds,
		m.cacheRequests, m.loginAttempts, m.importRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RegisterDB exports connection pool statistics of db
func (m *Metrics) RegisterDB(db *sql.DB, name string) error {
	return m.Registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// RequestStarted increments the in-flight gauge and returns the matching completion func
func (m *Metrics) RequestStarted() func(method, route string, status int) {
	start := time.Now()
	m.httpInFlight.Inc()
	return func(method, route string, status int) {
		m.httpInFlight.Dec()
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Business counters below are no-ops on a nil *Metrics

func (m *Metrics) JournalEntry(action, journalType string) {
	if m == nil {
		return
	}
	m.journalEntries.WithLabelValues(action, journalType).Inc()
}

func (m *Metrics) CashBookTransaction(direction string) {
	if m == nil {
		return
	}
	m.cashBookTxns.WithLabelValues(direction).Inc()
}

func (m *Metrics) TrialBalanceGenerated(status string, took time.Duration) {
	if m == nil {
		return
	}
	m.trialBalances.WithLabelValues(status).Inc()
	m.trialBalanceSeconds.Observe(took.Seconds())
}

func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ImportRows(result string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.importRows.WithLabelValues(result).Add(float64(n))
}
