package identity

import (
	"context"
	"crypto/subtle"
	"sync"

	"github.com/nightglass/authkit/internal/auth/domain"
)

// StaticVerifier holds a fixed credential set in memory. Intended for
// development and tests where no directory service is running.
type StaticVerifier struct {
	mu      sync.RWMutex
	entries map[string]staticEntry
}

type staticEntry struct {
	secret   string
	identity domain.Identity
}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{entries: make(map[string]staticEntry)}
}

// Add registers a credential pair. Re-adding a username overwrites it.
func (v *StaticVerifier) Add(username, secret string, id domain.Identity) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries[username] = staticEntry{secret: secret, identity: id}
}

func (v *StaticVerifier) VerifyCredentials(_ context.Context, username, secret string) (domain.Identity, error) {
	v.mu.RLock()
	e, ok := v.entries[username]
	v.mu.RUnlock()

	// Compare even on a miss so unknown and known usernames take the same
	// path.
	stored := e.secret
	if !ok {
		stored = ""
	}
	match := subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1
	if !ok || !match {
		return domain.Identity{}, ErrInvalidCredentials
	}
	return e.identity, nil
}
