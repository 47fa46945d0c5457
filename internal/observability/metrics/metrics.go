// Package metrics exposes Prometheus instruments for the conversation
// pipeline. All record methods are nil-safe so wiring metrics stays
// optional in tests and small deployments.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "realty"

// Metrics bundles the instruments the message pipeline records into.
type Metrics struct {
	completionLatency *prometheus.HistogramVec
	completionTokens  *prometheus.CounterVec
	fallbacks         *prometheus.CounterVec
	messages          *prometheus.CounterVec
}

// New registers the pipeline instruments with the given registerer, or
// the default registerer when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		completionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "latency_seconds",
			Help:      "Latency of LLM completion requests.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 15},
		}, []string{"model", "status"}),
		completionTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "tokens_total",
			Help:      "Tokens consumed by completion requests.",
		}, []string{"model", "type"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "fallbacks_total",
			Help:      "Replies served by the template responder instead of the LLM.",
		}, []string{"reason"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "processed_total",
			Help:      "Incoming messages by processing outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.completionLatency, m.completionTokens, m.fallbacks, m.messages)
	return m
}

// ObserveCompletion records one completion attempt.
func (m *Metrics) ObserveCompletion(model, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.completionLatency.WithLabelValues(model, status).Observe(elapsed.Seconds())
}

// AddTokens records token usage for a completed request.
func (m *Metrics) AddTokens(model string, input, output int32) {
	if m == nil {
		return
	}
	m.completionTokens.WithLabelValues(model, "input").Add(float64(input))
	m.completionTokens.WithLabelValues(model, "output").Add(float64(output))
}

// IncFallback counts a reply served by the template responder.
func (m *Metrics) IncFallback(reason string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(reason).Inc()
}

// IncMessage counts one processed message by outcome.
func (m *Metrics) IncMessage(outcome string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(outcome).Inc()
}
