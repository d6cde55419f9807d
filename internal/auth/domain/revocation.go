package domain

import "time"

// Revocation reasons recorded alongside revocation entries.
const (
	RevocationReasonLogout = "logout"
	RevocationReasonAdmin  = "admin"
	RevocationReasonReplay = "refresh_replay"
)

// Revocation makes the referenced token id permanently invalid, regardless
// of expiry. The id may be an access token jti, a refresh token id, or a
// lineage id (which kills every token minted under that lineage).
type Revocation struct {
	TokenID   string
	RevokedAt time.Time
	Reason    string
}
