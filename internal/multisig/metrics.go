package multisig

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultAccepted  = "accepted"
	resultMalformed = "malformed"
	resultInvalid   = "invalid"
)

type Metrics struct {
	msgsBuilt  prometheus.Counter
	msgsParsed *prometheus.CounterVec
}

// NewMetrics creates the multisig message counters and registers them with registerer. A nil registerer leaves the
// counters unregistered.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		msgsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spcrypto",
			Subsystem: "multisig",
			Name:      "partial_key_image_msgs_built_total",
			Help:      "Number of partial key image messages built and signed.",
		}),
		msgsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spcrypto",
			Subsystem: "multisig",
			Name:      "partial_key_image_msgs_parsed_total",
			Help:      "Number of partial key image messages parsed, by result.",
		}, []string{"result"}),
	}
	if registerer == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.msgsBuilt, m.msgsParsed} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeParsed(err error) {
	switch {
	case err == nil:
		m.msgsParsed.WithLabelValues(resultAccepted).Inc()
	case errors.Is(err, ErrMalformedMsg):
		m.msgsParsed.WithLabelValues(resultMalformed).Inc()
	default:
		m.msgsParsed.WithLabelValues(resultInvalid).Inc()
	}
}
