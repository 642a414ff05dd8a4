// Package metrics defines the relay's Prometheus collectors. Collectors work
// unregistered, so library code and tests can increment them freely; the
// daemon calls MustRegister once at startup to expose them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courier_commands_total",
			Help: "Total number of wire commands processed.",
		},
		[]string{"command", "status"},
	)

	CommandDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courier_command_duration_seconds",
			Help:    "Duration of wire command processing.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	MessagesStoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "courier_messages_stored_total",
			Help: "Total number of messages accepted for delivery.",
		},
	)

	MessageCiphertextBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courier_message_ciphertext_bytes",
			Help:    "Ciphertext sizes for stored messages.",
			Buckets: prometheus.ExponentialBuckets(64, 2, 10),
		},
	)

	ClientsRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "courier_clients_registered_total",
			Help: "Total number of Register commands accepted.",
		},
	)

	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "courier_active_connections",
			Help: "Currently open client connections.",
		},
	)
)

// MustRegister registers every collector on the default registerer with a
// constant service label.
func MustRegister(serviceName string) {
	r := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": serviceName},
		prometheus.DefaultRegisterer,
	)
	r.MustRegister(
		CommandsTotal,
		CommandDurationSeconds,
		MessagesStoredTotal,
		MessageCiphertextBytes,
		ClientsRegisteredTotal,
		ActiveConnections,
	)
}
