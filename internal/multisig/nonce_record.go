// Package multisig holds the signer-side pieces of CryptoNote/seraphis multisig: the record of private signature nonces,
// and the partial key image messages signers exchange to assemble key images for onetime addresses they co-own.
package multisig

import (
	"errors"
	"fmt"
	"io"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/crypto/transcript"
)

var ErrInvalidBase = errors.New("nonce pubkey base is invalid")

// SignerSetFilter is a bitmask selecting a subset of the multisig signers.
type SignerSetFilter uint64

// PubNonces is a pair of public signature nonces, stored multiplied by (1/8).
type PubNonces struct {
	Nonce1 curve.Key
	Nonce2 curve.Key
}

var _ transcript.Appender = PubNonces{}

// Less orders nonce pairs by their first nonce, then their second, comparing bytes.
func (p PubNonces) Less(other PubNonces) bool {
	if p.Nonce1 != other.Nonce1 {
		return p.Nonce1.Less(other.Nonce1)
	}
	return p.Nonce2.Less(other.Nonce2)
}

func (p PubNonces) Equal(other PubNonces) bool {
	return !p.Less(other) && !other.Less(p)
}

func (p PubNonces) AppendToTranscript(b *transcript.Builder) {
	b.AppendKey("nonce1", p.Nonce1)
	b.AppendKey("nonce2", p.Nonce2)
}

type nonces struct {
	nonce1 curve.SecretKey
	nonce2 curve.SecretKey
}

type filterRecord = map[SignerSetFilter]*nonces
type proofKeyRecord = map[curve.Key]filterRecord

// NonceRecord stores the private signature nonces of a signer, keyed by message, proof key and signer set filter.
// A nonce pair must only ever be used for one signature, so a record can be added once and should be removed after
// it was used. NonceRecord is not safe for concurrent use; see SharedNonceRecord.
type NonceRecord struct {
	record map[curve.Key]proofKeyRecord
	rand   io.Reader
}

// NewNonceRecord returns an empty record that samples nonces from rand.
func NewNonceRecord(rand io.Reader) *NonceRecord {
	return &NonceRecord{make(map[curve.Key]proofKeyRecord), rand}
}

func (r *NonceRecord) get(message, proofKey curve.Key, filter SignerSetFilter) (*nonces, bool) {
	n, ok := r.record[message][proofKey][filter]
	return n, ok
}

// Has reports whether nonces are recorded for the given message, proof key and filter.
func (r *NonceRecord) Has(message, proofKey curve.Key, filter SignerSetFilter) bool {
	_, ok := r.get(message, proofKey, filter)
	return ok
}

// Len returns the number of recorded nonce pairs.
func (r *NonceRecord) Len() int {
	count := 0
	for _, byProofKey := range r.record {
		for _, byFilter := range byProofKey {
			count += len(byFilter)
		}
	}
	return count
}

// TryAdd samples and records a fresh nonce pair. It returns false, and records nothing, if a pair is already
// recorded for the same message, proof key and filter, or if the proof key is not in the prime-order subgroup.
func (r *NonceRecord) TryAdd(message, proofKey curve.Key, filter SignerSetFilter) (bool, error) {
	if r.Has(message, proofKey, filter) {
		return false, nil
	}
	if !curve.IsInPrimeSubgroup(proofKey) {
		return false, nil
	}

	nonce1, err := curve.RandomSecretKey(r.rand)
	if err != nil {
		return false, fmt.Errorf("failed to sample nonce: %w", err)
	}
	nonce2, err := curve.RandomSecretKey(r.rand)
	if err != nil {
		return false, fmt.Errorf("failed to sample nonce: %w", err)
	}

	byProofKey, ok := r.record[message]
	if !ok {
		byProofKey = make(proofKeyRecord)
		r.record[message] = byProofKey
	}
	byFilter, ok := byProofKey[proofKey]
	if !ok {
		byFilter = make(filterRecord)
		byProofKey[proofKey] = byFilter
	}
	byFilter[filter] = &nonces{nonce1, nonce2}
	return true, nil
}

// TryGetPrivkeys returns the recorded private nonces.
func (r *NonceRecord) TryGetPrivkeys(message, proofKey curve.Key, filter SignerSetFilter) (curve.SecretKey, curve.SecretKey, bool) {
	n, ok := r.get(message, proofKey, filter)
	if !ok {
		return curve.SecretKey{}, curve.SecretKey{}, false
	}
	return n.nonce1, n.nonce2, true
}

// TryGetPubkeysForBase returns the recorded nonces multiplied by base and by (1/8). The base must be a point in the
// prime-order subgroup other than the identity; otherwise an error wrapping ErrInvalidBase is returned.
func (r *NonceRecord) TryGetPubkeysForBase(message, proofKey curve.Key, filter SignerSetFilter, base curve.Key) (PubNonces, bool, error) {
	if base == curve.IdentityKey || !curve.IsInPrimeSubgroup(base) {
		return PubNonces{}, false, fmt.Errorf("%w: %v", ErrInvalidBase, base)
	}
	n, ok := r.get(message, proofKey, filter)
	if !ok {
		return PubNonces{}, false, nil
	}

	nonce1, err := pubNonce(n.nonce1, base)
	if err != nil {
		return PubNonces{}, false, err
	}
	nonce2, err := pubNonce(n.nonce2, base)
	if err != nil {
		return PubNonces{}, false, err
	}
	return PubNonces{nonce1, nonce2}, true, nil
}

// pubNonce returns (1/8) * nonce * base.
func pubNonce(nonce curve.SecretKey, base curve.Key) (curve.Key, error) {
	s, err := nonce.Scalar()
	if err != nil {
		return curve.Key{}, err
	}
	k, err := curve.ScalarMultKey(base, s)
	if err != nil {
		return curve.Key{}, err
	}
	return curve.ScalarMultKey(k, curve.InvEight)
}

// TryRemove deletes the recorded nonces and prunes levels of the record that became empty.
func (r *NonceRecord) TryRemove(message, proofKey curve.Key, filter SignerSetFilter) bool {
	if !r.Has(message, proofKey, filter) {
		return false
	}
	byProofKey := r.record[message]
	byFilter := byProofKey[proofKey]

	n := byFilter[filter]
	n.nonce1.Wipe()
	n.nonce2.Wipe()
	delete(byFilter, filter)
	if len(byFilter) == 0 {
		delete(byProofKey, proofKey)
	}
	if len(byProofKey) == 0 {
		delete(r.record, message)
	}
	return true
}
