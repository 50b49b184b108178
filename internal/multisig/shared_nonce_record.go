package multisig

import (
	"io"

	"github.com/seraphis-project/spcrypto/internal/crypto/curve"
	"github.com/seraphis-project/spcrypto/internal/rwlock"
)

// SharedNonceRecord is a NonceRecord that can be used from multiple goroutines. Lookups take the read lock, changes
// take the write lock.
type SharedNonceRecord struct {
	record *rwlock.Lockable[*NonceRecord]
}

func NewSharedNonceRecord(rand io.Reader) *SharedNonceRecord {
	return &SharedNonceRecord{rwlock.New(NewNonceRecord(rand))}
}

func (s *SharedNonceRecord) Has(message, proofKey curve.Key, filter SignerSetFilter) bool {
	return rwlock.Get(s.record, func(r *NonceRecord) bool {
		return r.Has(message, proofKey, filter)
	})
}

func (s *SharedNonceRecord) Len() int {
	return rwlock.Get(s.record, (*NonceRecord).Len)
}

func (s *SharedNonceRecord) TryAdd(message, proofKey curve.Key, filter SignerSetFilter) (added bool, err error) {
	s.record.Write(func(r **NonceRecord) {
		added, err = (*r).TryAdd(message, proofKey, filter)
	})
	return added, err
}

func (s *SharedNonceRecord) TryGetPrivkeys(message, proofKey curve.Key, filter SignerSetFilter) (nonce1, nonce2 curve.SecretKey, ok bool) {
	s.record.Read(func(r *NonceRecord) {
		nonce1, nonce2, ok = r.TryGetPrivkeys(message, proofKey, filter)
	})
	return nonce1, nonce2, ok
}

func (s *SharedNonceRecord) TryGetPubkeysForBase(message, proofKey curve.Key, filter SignerSetFilter, base curve.Key) (pub PubNonces, ok bool, err error) {
	s.record.Read(func(r *NonceRecord) {
		pub, ok, err = r.TryGetPubkeysForBase(message, proofKey, filter, base)
	})
	return pub, ok, err
}

func (s *SharedNonceRecord) TryRemove(message, proofKey curve.Key, filter SignerSetFilter) bool {
	return rwlock.Update(s.record, func(r **NonceRecord) bool {
		return (*r).TryRemove(message, proofKey, filter)
	})
}

// ReadOnly returns a handle that can only look records up.
func (s *SharedNonceRecord) ReadOnly() ReadOnlyNonceRecord {
	return ReadOnlyNonceRecord{s.record.ReadOnly()}
}

type ReadOnlyNonceRecord struct {
	record rwlock.ReadLockable[*NonceRecord]
}

func (r ReadOnlyNonceRecord) Has(message, proofKey curve.Key, filter SignerSetFilter) bool {
	return rwlock.Get(r.record, func(rec *NonceRecord) bool {
		return rec.Has(message, proofKey, filter)
	})
}

func (r ReadOnlyNonceRecord) TryGetPubkeysForBase(message, proofKey curve.Key, filter SignerSetFilter, base curve.Key) (pub PubNonces, ok bool, err error) {
	r.record.Read(func(rec *NonceRecord) {
		pub, ok, err = rec.TryGetPubkeysForBase(message, proofKey, filter, base)
	})
	return pub, ok, err
}
