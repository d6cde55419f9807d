package service

import "errors"

// Error taxonomy of the credential lifecycle engine. Handlers and the RPC
// surface map these to status codes; everything not listed here is an
// internal failure.
var (
	// ErrInvalidCredentials rejects a login. Unknown subject and wrong
	// secret collapse into the same error so callers cannot probe for
	// registered usernames.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidToken covers malformed tokens, bad signatures, unknown
	// key ids, issuer mismatches, and refresh tokens with no record.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrExpired reports a token past its lifetime. The boundary is
	// inclusive: a token is rejected at its exact expiry instant.
	ErrExpired = errors.New("token_expired")

	// ErrRevoked reports a token that was explicitly revoked, directly or
	// through its lineage.
	ErrRevoked = errors.New("token_revoked")

	// ErrReplayDetected reports a second use of an already-rotated refresh
	// token. Detection revokes the whole lineage as a side effect.
	ErrReplayDetected = errors.New("token_replay_detected")

	// ErrKeyUnavailable reports that no signing key is installed or the
	// key material could not be loaded.
	ErrKeyUnavailable = errors.New("key_unavailable")

	// ErrStoreUnavailable reports that the credential store could not
	// answer. Revocation checks fail closed on this, never open.
	ErrStoreUnavailable = errors.New("store_unavailable")
)
