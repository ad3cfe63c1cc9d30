package telemetry

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openchange/syncbuffer"
)

type Metrics struct {
	Registry *prometheus.Registry

	TransfersTotal *prometheus.CounterVec
	BytesDecoded   prometheus.Counter
	NodesTotal     *prometheus.CounterVec
	DecodeErrors   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		TransfersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syncbuffer",
				Name:      "transfers_total",
				Help:      "Transfer buffers processed, by outcome.",
			},
			[]string{"status"},
		),
		BytesDecoded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "syncbuffer",
				Name:      "bytes_decoded_total",
				Help:      "Bytes of successfully decoded transfer buffers.",
			},
		),
		NodesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syncbuffer",
				Name:      "nodes_total",
				Help:      "Decoded nodes, by kind.",
			},
			[]string{"kind"},
		),
		DecodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "syncbuffer",
				Name:      "decode_errors_total",
				Help:      "Transfer buffers that failed to decode, by reason.",
			},
			[]string{"reason"},
		),
	}
	m.Registry.MustRegister(m.TransfersTotal, m.BytesDecoded, m.NodesTotal, m.DecodeErrors)
	return m
}

// Observe records a successfully decoded stream.
func (m *Metrics) Observe(s syncbuffer.Stream) {
	m.TransfersTotal.WithLabelValues("ok").Inc()
	for _, n := range s {
		m.BytesDecoded.Add(float64(n.Size))
		m.NodesTotal.WithLabelValues(n.Kind.String()).Inc()
	}
}

// ObserveSkipped records a transfer that was not decoded.
func (m *Metrics) ObserveSkipped(reason string) {
	m.TransfersTotal.WithLabelValues(reason).Inc()
}

// ObserveError records a failed decode.
func (m *Metrics) ObserveError(err error) {
	m.TransfersTotal.WithLabelValues("error").Inc()
	m.DecodeErrors.WithLabelValues(Reason(err)).Inc()
}

// Reason classifies a decode error for the reason label.
func Reason(err error) string {
	switch {
	case errors.Is(err, syncbuffer.ErrMalformedGlobset):
		return "malformed_globset"
	case errors.Is(err, syncbuffer.ErrTruncated):
		return "truncated"
	case errors.Is(err, syncbuffer.ErrUnhandledType):
		return "unhandled_type"
	case errors.Is(err, syncbuffer.ErrNamedKind):
		return "named_kind"
	case errors.Is(err, syncbuffer.ErrUnknownCommand),
		errors.Is(err, syncbuffer.ErrStackUnderflow),
		errors.Is(err, syncbuffer.ErrUnbalancedStack),
		errors.Is(err, syncbuffer.ErrNegativeRange):
		return "globset"
	}
	return "other"
}

// WriteTextfile writes the metrics in the text format read by the node
// exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
