package domain

import "time"

// TokenPair is what a successful login or refresh returns: a short-lived
// signed access token and a long-lived opaque refresh token.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`
}

// RefreshToken is the persisted record of an issued refresh token. The
// opaque value handed to the client is never stored; only its SHA-256
// fingerprint is.
type RefreshToken struct {
	ID          string
	Subject     string
	Tenant      string
	Roles       []string
	LineageID   string // stable across rotations; one lineage per login/device
	Fingerprint string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	Revoked     bool
	ReplacedBy  *string // id of the successor token after rotation-on-use
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Identity reconstructs the identity embedded in the record.
func (t RefreshToken) Identity() Identity {
	return Identity{Subject: t.Subject, Roles: t.Roles, Tenant: t.Tenant}
}

// Usable reports whether the token may still mint a successor pair at now.
// Expiry is inclusive: now >= ExpiresAt rejects.
func (t RefreshToken) Usable(now time.Time) bool {
	return !t.Revoked && t.ReplacedBy == nil && now.Before(t.ExpiresAt)
}
