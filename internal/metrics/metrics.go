// Package metrics provides Prometheus instrumentation for the Decoy agent.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MessagesProcessed counts inbound webhook messages by sender attribution.
	MessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decoy",
			Name:      "messages_processed_total",
			Help:      "Total inbound messages processed, by sender role.",
		},
		[]string{"sender"},
	)

	// ScamsConfirmed counts sessions whose scam flag latched true.
	ScamsConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "decoy",
			Name:      "scams_confirmed_total",
			Help:      "Total sessions confirmed as scam engagements.",
		},
	)

	// ReportsFiled counts final-report deliveries by result.
	ReportsFiled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decoy",
			Name:      "reports_filed_total",
			Help:      "Total final reports filed with the collection endpoint, by result.",
		},
		[]string{"result"},
	)

	// PersonaFallbacks counts replies served from the fixed fallback
	// because the persona engine failed or was not configured.
	PersonaFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "decoy",
			Name:      "persona_fallbacks_total",
			Help:      "Total persona replies that fell back to the fixed reply.",
		},
	)

	// ActiveSessions tracks live engagement sessions. There is no session
	// eviction, so in long deployments this only grows.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "decoy",
			Name:      "active_sessions",
			Help:      "Number of live engagement sessions.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		MessagesProcessed,
		ScamsConfirmed,
		ReportsFiled,
		PersonaFallbacks,
		ActiveSessions,
	)
}

// Handler returns the HTTP handler for the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
