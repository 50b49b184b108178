package multisig

import (
	"io"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/logger"
)

// KeyImageMsgHandler builds and parses partial key image messages for one signer, counting and logging the outcome.
type KeyImageMsgHandler struct {
	metrics *Metrics
	rand    io.Reader
	log     *logger.Logger
}

// NewKeyImageMsgHandler returns a handler that signs with randomness from rand. A nil metrics uses unregistered
// counters.
func NewKeyImageMsgHandler(metrics *Metrics, rand io.Reader) *KeyImageMsgHandler {
	if metrics == nil {
		metrics, _ = NewMetrics(nil)
	}
	return &KeyImageMsgHandler{metrics, rand, logger.New("multisig")}
}

func (h *KeyImageMsgHandler) Build(signingPrivkey curve.SecretKey, onetimeAddress curve.Key, keysharePrivkeys []curve.SecretKey) (*PartialKeyImageMsg, error) {
	m, err := NewPartialKeyImageMsg(signingPrivkey, onetimeAddress, keysharePrivkeys, h.rand)
	if err != nil {
		h.log.Error("failed to build partial key image message", logger.Fields{
			"onetimeAddress": onetimeAddress.String(),
			"error":          err.Error(),
		})
		return nil, err
	}
	h.metrics.msgsBuilt.Inc()
	h.log.Debug("built partial key image message", logger.Fields{
		"onetimeAddress": onetimeAddress.String(),
		"keyshares":      len(keysharePrivkeys),
	})
	return m, nil
}

func (h *KeyImageMsgHandler) Parse(msg string) (*PartialKeyImageMsg, error) {
	m, err := ParsePartialKeyImageMsg(msg)
	h.metrics.observeParsed(err)
	if err != nil {
		h.log.Warn("rejected partial key image message", logger.Fields{"error": err.Error()})
		return nil, err
	}
	h.log.Debug("accepted partial key image message", logger.Fields{
		"onetimeAddress": m.OnetimeAddress().String(),
		"signingPubkey":  m.SigningPubkey().String(),
		"keyshares":      len(m.keyshares),
	})
	return m, nil
}
