package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ProfilesRegistered  prometheus.Counter
	AccountsProvisioned prometheus.Counter
	ProfilesTokenized   prometheus.Counter
	InvestRequestsFiled prometheus.Counter
	InvestDecisions     *prometheus.CounterVec
	LedgerCallDuration  *prometheus.HistogramVec
	RequestLatency      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		ProfilesRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hask_profiles_registered_total",
			Help: "Total number of profiles registered.",
		}),
		AccountsProvisioned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hask_accounts_provisioned_total",
			Help: "Total number of ledger accounts provisioned.",
		}),
		ProfilesTokenized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hask_profiles_tokenized_total",
			Help: "Total number of profiles tokenized as ledger assets.",
		}),
		InvestRequestsFiled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hask_invest_requests_filed_total",
			Help: "Total number of investment requests filed.",
		}),
		InvestDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hask_invest_decisions_total",
			Help: "Total number of investment decisions by outcome.",
		}, []string{"outcome"}),
		LedgerCallDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hask_ledger_call_duration_seconds",
			Help:    "Duration of outbound ledger gateway calls by operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hask_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) ObserveLedgerCall(op string, seconds float64) {
	if m == nil {
		return
	}
	m.LedgerCallDuration.WithLabelValues(op).Observe(seconds)
}

func (m *Metrics) IncDecision(outcome string) {
	if m == nil {
		return
	}
	m.InvestDecisions.WithLabelValues(outcome).Inc()
}
