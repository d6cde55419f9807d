package jwtx

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyOptions captures the expectations applied to every token.
type VerifyOptions struct {
	// Issuer the token must carry. Empty means "don't care".
	Issuer string

	// Leeway absorbs small clock skew on exp/nbf comparisons. This is a
	// configuration value, never a silent hard-coded constant.
	Leeway time.Duration
}

// Verifier validates access tokens against the keyring's current snapshot.
// Verification itself is pure: it never touches a store.
type Verifier struct {
	ring *Keyring
	opts VerifyOptions
}

// NewVerifier returns a Verifier bound to ring.
func NewVerifier(ring *Keyring, opts VerifyOptions) *Verifier {
	return &Verifier{ring: ring, opts: opts}
}

// Verify validates raw at the current time.
func (v *Verifier) Verify(raw string) (Claims, error) {
	return v.VerifyAt(raw, time.Now().UTC())
}

// VerifyAt validates raw at the instant now. All expiry comparisons within
// one call use this single clock value.
//
// Key selection: if the token carries a kid header, the snapshot is
// consulted directly; otherwise the usable keys are tried in
// most-recently-activated-first order and the first signature match wins.
func (v *Verifier) VerifyAt(raw string, now time.Time) (Claims, error) {
	if strings.Count(raw, ".") != 2 {
		return Claims{}, ErrMalformed
	}

	snap := v.ring.Snapshot()

	kid, err := peekKID(raw)
	if err != nil {
		return Claims{}, err
	}

	var claims *Claims
	if kid != "" {
		key, ok := snap.Get(kid, now)
		if !ok {
			return Claims{}, ErrUnknownKID
		}
		claims, err = parseWithKey(raw, key)
		if err != nil {
			return Claims{}, err
		}
	} else {
		keys := snap.Keys(now)
		if len(keys) == 0 {
			return Claims{}, ErrKeyUnavailable
		}
		for _, key := range keys {
			claims, err = parseWithKey(raw, key)
			if err == nil {
				break
			}
		}
		if claims == nil {
			return Claims{}, err
		}
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(now, v.opts.Leeway); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// peekKID extracts the kid header without verifying anything.
func peekKID(raw string) (string, error) {
	var header struct {
		Kid string `json:"kid"`
	}
	parts := strings.SplitN(raw, ".", 2)
	if err := decodeSegment(parts[0], &header); err != nil {
		return "", ErrMalformed
	}
	return header.Kid, nil
}

// parseWithKey checks structure and signature against one key. Claim
// validation (issuer, expiry) happens afterwards with the caller's clock,
// so the library's own time checks are disabled here.
func parseWithKey(raw string, key VerificationKey) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{key.Alg}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != key.Alg {
			return nil, ErrAlgMismatch
		}
		return key.Public, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSig
		case errors.Is(err, ErrAlgMismatch):
			return nil, ErrAlgMismatch
		default:
			return nil, ErrInvalidSig
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrMalformed
	}
	return claims, nil
}
