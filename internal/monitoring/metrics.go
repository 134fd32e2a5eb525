package monitoring

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry holds every keyforge collector. A one-shot CLI has no scrape
// endpoint, so metrics are pushed to a gateway when one is configured.
var Registry = prometheus.NewRegistry()

var (
	// Command metrics
	CommandsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyforge_commands_total",
			Help: "Total number of command invocations",
		},
		[]string{"command", "scheme", "status"},
	)

	CommandDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keyforge_command_duration_seconds",
			Help:    "Command execution time",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"command"},
	)

	// Derivation metrics
	DerivationsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyforge_derivations_total",
			Help: "Total number of key derivations by strategy",
		},
		[]string{"scheme", "kind"},
	)

	// Keystore metrics
	KeystoreInsertDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keyforge_keystore_insert_duration_seconds",
			Help:    "Keystore JSON-RPC round trip time",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"status"},
	)
)

// RecordCommand records a finished command
func RecordCommand(command, scheme string, err error, duration float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	CommandsTotal.WithLabelValues(command, scheme, status).Inc()
	CommandDuration.WithLabelValues(command).Observe(duration)
}

// RecordDerivation records which strategy resolved the key material
func RecordDerivation(scheme, kind string) {
	DerivationsTotal.WithLabelValues(scheme, kind).Inc()
}

// RecordKeystoreInsert records a keystore round trip
func RecordKeystoreInsert(err error, duration float64) {
	status := "success"
	if err != nil {
		status = "error"
	}
	KeystoreInsertDuration.WithLabelValues(status).Observe(duration)
}

// Push sends the registry to a Prometheus pushgateway. An empty url is a no-op.
func Push(ctx context.Context, url, job string, grouping map[string]string) error {
	if url == "" {
		return nil
	}

	pusher := push.New(url, job).Gatherer(Registry)
	for name, value := range grouping {
		pusher = pusher.Grouping(name, value)
	}
	if err := pusher.AddContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
