// Package metrics counts compile and deployment activity on a private
// prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Compile results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the configurator's counters.
type Metrics struct {
	registry *prometheus.Registry

	compileTotal     *prometheus.CounterVec
	messagesSent     *prometheus.CounterVec
	sendErrors       prometheus.Counter
	nodesProvisioned prometheus.Counter
}

// New registers all counters on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		compileTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sbconf_compile_total",
			Help: "Compile passes by result.",
		}, []string{"result"}),
		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sbconf_messages_sent_total",
			Help: "Provisioning messages written, by OSC address.",
		}, []string{"address"}),
		sendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sbconf_send_errors_total",
			Help: "Provisioning messages the local socket refused.",
		}),
		nodesProvisioned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sbconf_nodes_provisioned_total",
			Help: "Nodes whose full message sequence was sent.",
		}),
	}
	m.registry.MustRegister(m.compileTotal, m.messagesSent, m.sendErrors, m.nodesProvisioned)
	return m
}

// Registry exposes the gatherer, e.g. for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Compiled records one compile pass.
func (m *Metrics) Compiled(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.compileTotal.WithLabelValues(ResultError).Inc()
		return
	}
	m.compileTotal.WithLabelValues(ResultOK).Inc()
}

// MessageSent records one written message.
func (m *Metrics) MessageSent(address string) {
	if m == nil {
		return
	}
	m.messagesSent.WithLabelValues(address).Inc()
}

// SendFailed records one message the socket refused.
func (m *Metrics) SendFailed() {
	if m == nil {
		return
	}
	m.sendErrors.Inc()
}

// NodeProvisioned records a node whose sequence completed.
func (m *Metrics) NodeProvisioned() {
	if m == nil {
		return
	}
	m.nodesProvisioned.Inc()
}

// WriteTextfile dumps the counters in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
