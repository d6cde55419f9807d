package jwtx

import (
	"crypto"
	"sync"
	"time"
)

// VerificationKey is one public key in a snapshot, together with the
// window during which it is accepted.
type VerificationKey struct {
	Kid         string
	Alg         string
	Public      crypto.PublicKey
	ActivatedAt time.Time
	// NotAfter bounds the verification window for retiring keys.
	// Zero means no bound (the key is still active).
	NotAfter time.Time
}

// usable reports whether the key may verify signatures at the instant now.
// The boundary is inclusive: a retiring key is dead once now >= NotAfter.
func (k VerificationKey) usable(now time.Time) bool {
	return k.NotAfter.IsZero() || now.Before(k.NotAfter)
}

// KeySnapshot is an immutable view of the verification key set: the active
// key plus any retiring keys still inside their overlap window, ordered
// most-recently-activated first. Each verification call works against one
// snapshot, so a concurrent rotation can never invalidate it mid-flight.
type KeySnapshot struct {
	keys  []VerificationKey
	byKid map[string]VerificationKey
	jwks  JWKS
}

// Get returns the key for kid if it exists and is usable at now.
func (s *KeySnapshot) Get(kid string, now time.Time) (VerificationKey, bool) {
	k, ok := s.byKid[kid]
	if !ok || !k.usable(now) {
		return VerificationKey{}, false
	}
	return k, true
}

// Keys returns the usable keys at now, most-recently-activated first.
func (s *KeySnapshot) Keys(now time.Time) []VerificationKey {
	out := make([]VerificationKey, 0, len(s.keys))
	for _, k := range s.keys {
		if k.usable(now) {
			out = append(out, k)
		}
	}
	return out
}

// JWKS returns the published key set.
func (s *KeySnapshot) JWKS() JWKS { return s.jwks }

// Len reports the number of keys in the snapshot, usable or not.
func (s *KeySnapshot) Len() int { return len(s.keys) }

// Keyring owns the signing key material. Exactly one key is active for
// signing at any instant; previously active keys stay in the snapshot as
// retiring keys until their window closes. Mutations (install, rotate,
// prune) build a fresh snapshot instead of editing shared state in place.
type Keyring struct {
	mu       sync.RWMutex
	active   *Signer
	retiring []VerificationKey
	snapshot *KeySnapshot
}

// NewKeyring returns an empty keyring. Active() fails with
// ErrKeyUnavailable until the first Install.
func NewKeyring() *Keyring {
	return &Keyring{snapshot: &KeySnapshot{byKid: map[string]VerificationKey{}}}
}

// Active returns the current signing key, or ErrKeyUnavailable when the
// ring has not been initialized.
func (r *Keyring) Active() (*Signer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.active == nil {
		return nil, ErrKeyUnavailable
	}
	return r.active, nil
}

// Snapshot returns the current immutable verification key set.
func (r *Keyring) Snapshot() *KeySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Install makes signer the active signing key without retiring anything.
// Used at startup, either for a freshly generated key or one loaded from
// the store.
func (r *Keyring) Install(signer *Signer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		return ErrAlreadyActive
	}
	return r.commit(signer, r.retiring)
}

// Restore adds a retiring verification-only key, typically loaded from
// the store after a restart. It never affects the active signer.
func (r *Keyring) Restore(key VerificationKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	retiring := make([]VerificationKey, 0, len(r.retiring)+1)
	retiring = append(retiring, r.retiring...)
	retiring = append(retiring, key)
	return r.commit(r.active, retiring)
}

// Rotate atomically activates signer and moves the previous active key to
// the retiring set with the given verification window end. Tokens signed
// with the old key keep verifying until notAfter.
func (r *Keyring) Rotate(signer *Signer, notAfter time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	retiring := r.retiring
	if r.active != nil {
		retiring = make([]VerificationKey, 0, len(r.retiring)+1)
		retiring = append(retiring, r.retiring...)
		retiring = append(retiring, VerificationKey{
			Kid:         r.active.kid,
			Alg:         r.active.alg,
			Public:      r.active.public,
			ActivatedAt: r.active.activatedAt,
			NotAfter:    notAfter,
		})
	}
	return r.commit(signer, retiring)
}

// Prune drops retiring keys whose window has closed. Expired keys would be
// rejected at verification time anyway; this just keeps the snapshot small.
func (r *Keyring) Prune(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]VerificationKey, 0, len(r.retiring))
	for _, k := range r.retiring {
		if k.usable(now) {
			kept = append(kept, k)
		}
	}
	return r.commit(r.active, kept)
}

// commit builds the snapshot for the proposed state and applies both
// together. A snapshot error leaves the ring exactly as it was. Caller
// holds the write lock.
func (r *Keyring) commit(active *Signer, retiring []VerificationKey) error {
	snap, err := newSnapshot(active, retiring)
	if err != nil {
		return err
	}
	r.active = active
	r.retiring = retiring
	r.snapshot = snap
	return nil
}

func newSnapshot(active *Signer, retiring []VerificationKey) (*KeySnapshot, error) {
	keys := make([]VerificationKey, 0, len(retiring)+1)
	if active != nil {
		keys = append(keys, VerificationKey{
			Kid:         active.kid,
			Alg:         active.alg,
			Public:      active.public,
			ActivatedAt: active.activatedAt,
		})
	}
	keys = append(keys, retiring...)

	// Most-recently-activated first; this is the trial order for tokens
	// that arrive without a kid header.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j].ActivatedAt.After(keys[j-1].ActivatedAt); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}

	byKid := make(map[string]VerificationKey, len(keys))
	var jwks JWKS
	for _, k := range keys {
		byKid[k.Kid] = k
		j, err := NewJWK(k.Kid, k.Alg, k.Public)
		if err != nil {
			return nil, err
		}
		jwks.Keys = append(jwks.Keys, j)
	}

	return &KeySnapshot{keys: keys, byKid: byKid, jwks: jwks}, nil
}
