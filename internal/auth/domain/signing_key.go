package domain

import "time"

// SigningKey is a persisted signing key with rotation state. Private key
// material is encrypted at rest. A key with RetiredAt == nil is the active
// signing key; retired keys remain valid for verification until ExpiresAt
// and are purged afterwards.
type SigningKey struct {
	ID                  string
	Kid                 string
	Algorithm           string // RS256 or EdDSA
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
	RetiredAt           *time.Time
	ExpiresAt           time.Time
}

// IsActive reports whether the key may sign at now.
func (k *SigningKey) IsActive(now time.Time) bool {
	return k.RetiredAt == nil && now.Before(k.ExpiresAt)
}

// IsExpired reports whether the key's verification window has closed.
func (k *SigningKey) IsExpired(now time.Time) bool {
	return !now.Before(k.ExpiresAt)
}
