package multisig

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/seraphis-project/spcrypto/internal/codec"
	"github.com/seraphis-project/spcrypto/internal/config"
	"github.com/seraphis-project/spcrypto/internal/crypto/cnsig"
	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/dualbase"
	"github.com/seraphis-project/spcrypto/internal/crypto/generators"
	"github.com/seraphis-project/spcrypto/internal/crypto/hash"
	"github.com/seraphis-project/spcrypto/internal/crypto/transcript"
)

var (
	ErrInvalidMsgInput = errors.New("invalid partial key image message input")
	ErrMalformedMsg    = errors.New("malformed partial key image message")
	ErrInvalidMsg      = errors.New("invalid partial key image message")
)

// PartialKeyImageMsg lets a multisig signer share, for one onetime address Ko, its multisig keyshares k_i * G together
// with its partial key images k_i * Hp(Ko). A dual base vector proof shows both vectors use the same k_i, and the
// message is signed by the signer's message signing key.
type PartialKeyImageMsg struct {
	msg              string
	onetimeAddress   curve.Key
	signingPubkey    curve.Key
	keyshares        []curve.Key
	partialKeyImages []curve.Key
}

// body is the binary payload of an encoded message.
type body struct {
	onetimeAddress curve.Key
	keyshares      []curve.Key
	partialKIs     []curve.Key
	signingPubkey  curve.Key
	proofC         curve.Key
	proofR         curve.Key
	signature      cnsig.Signature
}

var _ codec.Codec[*body] = &body{}

func (b *body) MarshalTo(target codec.Target) {
	target.WriteKey(b.onetimeAddress)
	codec.WriteKeys(target, b.keyshares)
	codec.WriteKeys(target, b.partialKIs)
	target.WriteKey(b.signingPubkey)
	target.WriteKey(b.proofC)
	target.WriteKey(b.proofR)
	target.Write(&b.signature)
}

func (b *body) UnmarshalFrom(source codec.Source) *body {
	out := &body{}
	out.onetimeAddress = source.ReadKey()
	out.keyshares = codec.ReadKeys[curve.Key](source)
	out.partialKIs = codec.ReadKeys[curve.Key](source)
	out.signingPubkey = source.ReadKey()
	out.proofC = source.ReadKey()
	out.proofR = source.ReadKey()
	out.signature = *(&cnsig.Signature{}).UnmarshalFrom(source)
	return out
}

// proofMessage is H_32(signing pubkey, Ko).
func proofMessage(signingPubkey, onetimeAddress curve.Key) curve.Key {
	t := transcript.NewFS(config.MultisigPartialCNKeyImageMsgMagicV1, 2*curve.KeySize)
	t.AppendKey("signing_pubkey", signingPubkey)
	t.AppendKey("Ko", onetimeAddress)
	return curve.Key(hash.HashTo32(t.Data()))
}

// signatureMessage is H_32(Ko, proof).
func signatureMessage(onetimeAddress curve.Key, proof *dualbase.Proof) hash.Hash {
	t := transcript.NewFS(config.MultisigPartialCNKeyImageMsgMagicV1, 2*curve.KeySize)
	t.AppendKey("Ko", onetimeAddress)
	t.Append("dualbase_proof", proof)
	return hash.HashTo32(t.Data())
}

func mul8All(keys []curve.Key) ([]curve.Key, error) {
	out := make([]curve.Key, len(keys))
	for i, k := range keys {
		var err error
		if out[i], err = curve.Mul8Key(k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NewPartialKeyImageMsg builds and signs a message for the onetime address Ko from the signer's keyshare private keys.
func NewPartialKeyImageMsg(signingPrivkey curve.SecretKey, onetimeAddress curve.Key, keysharePrivkeys []curve.SecretKey, rand io.Reader) (*PartialKeyImageMsg, error) {
	x, err := signingPrivkey.Scalar()
	if err != nil || curve.IsZeroScalar(x) {
		return nil, fmt.Errorf("%w: invalid signing key", ErrInvalidMsgInput)
	}
	if onetimeAddress == curve.ZeroKey {
		return nil, fmt.Errorf("%w: empty onetime address", ErrInvalidMsgInput)
	}
	if len(keysharePrivkeys) == 0 {
		return nil, fmt.Errorf("%w: no keyshares", ErrInvalidMsgInput)
	}
	signingPubkey := curve.ScalarBaseMultKey(x)

	kiBase, err := curve.KeyImageBase(onetimeAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMsgInput, err)
	}
	proof, err := dualbase.Prove(
		proofMessage(signingPubkey, onetimeAddress),
		generators.Raw(generators.G),
		kiBase,
		keysharePrivkeys,
		rand,
	)
	if err != nil {
		return nil, err
	}

	sig, err := cnsig.Sign(signatureMessage(onetimeAddress, proof), signingPubkey, signingPrivkey, rand)
	if err != nil {
		return nil, err
	}

	b := &body{
		onetimeAddress: onetimeAddress,
		keyshares:      proof.V1,
		partialKIs:     proof.V2,
		signingPubkey:  signingPubkey,
		proofC:         proof.C,
		proofR:         proof.R,
		signature:      *sig,
	}
	data, err := codec.Marshal(b)
	if err != nil {
		return nil, err
	}

	m := &PartialKeyImageMsg{
		msg:            config.MultisigPartialCNKeyImageMsgMagicV1 + base58.Encode(data),
		onetimeAddress: onetimeAddress,
		signingPubkey:  signingPubkey,
	}
	if m.keyshares, err = mul8All(proof.V1); err != nil {
		return nil, err
	}
	if m.partialKeyImages, err = mul8All(proof.V2); err != nil {
		return nil, err
	}
	return m, nil
}

// ParsePartialKeyImageMsg decodes an encoded message and validates it: the proof and the signature must verify.
// Decoding failures wrap ErrMalformedMsg, failed checks wrap ErrInvalidMsg.
func ParsePartialKeyImageMsg(msg string) (*PartialKeyImageMsg, error) {
	encoded, ok := strings.CutPrefix(msg, config.MultisigPartialCNKeyImageMsgMagicV1)
	if !ok {
		return nil, fmt.Errorf("%w: magic mismatch", ErrMalformedMsg)
	}
	data, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMsg, err)
	}
	b, err := codec.Unmarshal(data, &body{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMsg, err)
	}

	if b.onetimeAddress == curve.ZeroKey {
		return nil, fmt.Errorf("%w: onetime address is null", ErrInvalidMsg)
	}
	if len(b.keyshares) == 0 {
		return nil, fmt.Errorf("%w: no keyshares", ErrInvalidMsg)
	}
	if len(b.keyshares) != len(b.partialKIs) {
		return nil, fmt.Errorf("%w: %d keyshares but %d partial key images", ErrInvalidMsg, len(b.keyshares), len(b.partialKIs))
	}
	if b.signingPubkey == curve.ZeroKey || b.signingPubkey == curve.IdentityKey {
		return nil, fmt.Errorf("%w: signing key is null", ErrInvalidMsg)
	}
	if !curve.IsInPrimeSubgroup(b.signingPubkey) {
		return nil, fmt.Errorf("%w: signing key is not in the prime subgroup", ErrInvalidMsg)
	}

	kiBase, err := curve.KeyImageBase(b.onetimeAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMsg, err)
	}
	proof := &dualbase.Proof{
		M:  proofMessage(b.signingPubkey, b.onetimeAddress),
		C:  b.proofC,
		R:  b.proofR,
		V1: b.keyshares,
		V2: b.partialKIs,
	}
	if !dualbase.Verify(proof, generators.Raw(generators.G), kiBase) {
		return nil, fmt.Errorf("%w: dual base vector proof does not verify", ErrInvalidMsg)
	}
	if !cnsig.Verify(signatureMessage(b.onetimeAddress, proof), b.signingPubkey, &b.signature) {
		return nil, fmt.Errorf("%w: signature does not verify", ErrInvalidMsg)
	}

	m := &PartialKeyImageMsg{
		msg:            msg,
		onetimeAddress: b.onetimeAddress,
		signingPubkey:  b.signingPubkey,
	}
	if m.keyshares, err = mul8All(b.keyshares); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMsg, err)
	}
	if m.partialKeyImages, err = mul8All(b.partialKIs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMsg, err)
	}
	return m, nil
}

// String returns the encoded message.
func (m *PartialKeyImageMsg) String() string {
	return m.msg
}

func (m *PartialKeyImageMsg) OnetimeAddress() curve.Key {
	return m.onetimeAddress
}

func (m *PartialKeyImageMsg) SigningPubkey() curve.Key {
	return m.signingPubkey
}

// Keyshares returns the multisig keyshares k_i * G.
func (m *PartialKeyImageMsg) Keyshares() []curve.Key {
	return append([]curve.Key(nil), m.keyshares...)
}

// PartialKeyImages returns the partial key images k_i * Hp(Ko).
func (m *PartialKeyImageMsg) PartialKeyImages() []curve.Key {
	return append([]curve.Key(nil), m.partialKeyImages...)
}
