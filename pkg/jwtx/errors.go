package jwtx

import "errors"

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	// ErrKeyUnavailable means the keyring has no active signing key. The
	// caller must fail the operation; an unsigned token is never an option.
	ErrKeyUnavailable = errors.New("jwtx: no active signing key")

	// ErrAlreadyActive reports an Install on a ring that already has an
	// active key; use Rotate instead.
	ErrAlreadyActive = errors.New("jwtx: active signing key already installed")
)
