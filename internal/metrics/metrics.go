// Package metrics defines the Prometheus collectors exported by splitbook.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "splitbook"

// Metrics groups the ledger and RPC collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ExpensesAccepted *prometheus.CounterVec
	ExpensesRejected *prometheus.CounterVec
	ExpenseAmount    *prometheus.CounterVec
	Users            prometheus.Gauge
	Groups           prometheus.Gauge
	RPCDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExpensesAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_accepted_total",
			Help:      "Expenses validated and applied to balance sheets.",
		}, []string{"kind"}),
		ExpensesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_rejected_total",
			Help:      "Expenses rejected before any balance sheet was touched.",
		}, []string{"kind", "reason"}),
		ExpenseAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expense_amount_total",
			Help:      "Sum of applied expense amounts.",
		}, []string{"kind"}),
		Users: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Users known to the ledger.",
		}),
		Groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "groups",
			Help:      "Groups known to the ledger.",
		}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
	reg.MustRegister(
		m.ExpensesAccepted,
		m.ExpensesRejected,
		m.ExpenseAmount,
		m.Users,
		m.Groups,
		m.RPCDuration,
	)
	return m
}

// ExpenseAccepted records an applied expense.
func (m *Metrics) ExpenseAccepted(kind string, amount float64) {
	if m == nil {
		return
	}
	m.ExpensesAccepted.WithLabelValues(kind).Inc()
	m.ExpenseAmount.WithLabelValues(kind).Add(amount)
}

// ExpenseRejected records an expense that failed before being applied.
func (m *Metrics) ExpenseRejected(kind, reason string) {
	if m == nil {
		return
	}
	m.ExpensesRejected.WithLabelValues(kind, reason).Inc()
}

// SetDirectorySize updates the user and group gauges.
func (m *Metrics) SetDirectorySize(users, groups int) {
	if m == nil {
		return
	}
	m.Users.Set(float64(users))
	m.Groups.Set(float64(groups))
}

// ObserveRPC records the latency of one RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(procedure, code).Observe(seconds)
}
