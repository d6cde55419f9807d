package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nightglass/authkit/internal/auth/domain"
	"github.com/nightglass/authkit/internal/auth/store"
	"github.com/nightglass/authkit/pkg/cryptox"
	"github.com/nightglass/authkit/pkg/idx"
	"github.com/nightglass/authkit/pkg/jwtx"
	"github.com/nightglass/authkit/pkg/slogx"
)

// RevocationMode controls whether access-token verification consults the
// revocation list. Refresh-token checks always do, fail-closed, regardless
// of this setting.
type RevocationMode string

const (
	// RevocationOff skips the store entirely; verification is pure.
	RevocationOff RevocationMode = "off"

	// RevocationEnforce checks the list and fails closed: a store outage
	// surfaces as ErrStoreUnavailable, never as "not revoked".
	RevocationEnforce RevocationMode = "enforce"

	// RevocationLenient checks the list but accepts the token when the
	// store cannot answer. Trades strictness for availability.
	RevocationLenient RevocationMode = "lenient"
)

// TokenService is the credential lifecycle engine: it mints access/refresh
// pairs, verifies access tokens, rotates refresh tokens on use, and
// revokes.
type TokenService struct {
	Keyring    *jwtx.Keyring
	Verifier   *jwtx.Verifier
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// RevocationMode applies to access tokens only.
	RevocationMode RevocationMode

	// Now overrides the clock; nil means time.Now. Tests pin this.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// IssuePair mints an access/refresh pair for a freshly authenticated
// identity under a brand new lineage.
func (s *TokenService) IssuePair(ctx context.Context, id domain.Identity) (*domain.TokenPair, error) {
	now := s.now()
	lineageID := idx.New().String()

	access, err := s.signAccess(id, lineageID, now)
	if err != nil {
		return nil, err
	}

	opaque, rec, err := s.buildRefresh(id, lineageID, now)
	if err != nil {
		return nil, err
	}

	if err := s.Store.RefreshTokens().Create(ctx, rec); err != nil {
		return nil, mapStoreErr(err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: opaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// VerifyAccessToken checks signature, issuer, and expiry, then applies the
// revocation policy. Both the token's own id and its lineage id are
// checked; a lineage revoked after a replay kills every outstanding access
// token minted under it.
func (s *TokenService) VerifyAccessToken(ctx context.Context, raw string) (jwtx.Claims, error) {
	now := s.now()

	claims, err := s.Verifier.VerifyAt(raw, now)
	if err != nil {
		return jwtx.Claims{}, mapVerifyErr(err)
	}

	if s.RevocationMode == RevocationOff {
		return claims, nil
	}

	revoked, err := s.isRevoked(ctx, claims.ID, claims.SID)
	if err != nil {
		if s.RevocationMode == RevocationLenient {
			slogx.FromContext(ctx).Warn("revocation check skipped, store unavailable",
				slog.Any("error", err))
			return claims, nil
		}
		return jwtx.Claims{}, err
	}
	if revoked {
		return jwtx.Claims{}, ErrRevoked
	}

	return claims, nil
}

// RotateRefreshToken exchanges a live refresh token for a new pair. The
// presented token is consumed; presenting it again is a replay and revokes
// the whole lineage.
//
// Under concurrent rotation of the same token exactly one caller wins. The
// losers observe the replay path.
func (s *TokenService) RotateRefreshToken(ctx context.Context, refreshOpaque string) (*domain.TokenPair, error) {
	now := s.now()
	l := slogx.FromContext(ctx)

	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetByFingerprint(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, mapStoreErr(err)
	}

	// Replay and revocation are checked before expiry: a replayed token
	// must trip the cascade even when it has also expired.
	if rt.ReplacedBy != nil {
		l.Warn("refresh token replay detected",
			slog.String("token_id", rt.ID),
			slog.String("lineage_id", rt.LineageID),
		)
		if err := s.cascadeRevoke(ctx, rt.LineageID, now); err != nil {
			return nil, err
		}
		return nil, ErrReplayDetected
	}
	if rt.Revoked {
		return nil, ErrRevoked
	}
	if !now.Before(rt.ExpiresAt) {
		return nil, ErrExpired
	}

	id := rt.Identity()

	access, err := s.signAccess(id, rt.LineageID, now)
	if err != nil {
		return nil, err
	}

	newOpaque, newRec, err := s.buildRefresh(id, rt.LineageID, now)
	if err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().MarkReplaced(ctx, rt.ID, newRec.ID); err != nil {
			return err
		}
		return tx.RefreshTokens().Create(ctx, newRec)
	})
	if err != nil {
		// Lost the race: someone rotated (or revoked) this token between
		// our read and the conditional update. Same treatment as a replay.
		if errors.Is(err, store.ErrAlreadyReplaced) {
			l.Warn("refresh token rotation lost race, treating as replay",
				slog.String("token_id", rt.ID),
				slog.String("lineage_id", rt.LineageID),
			)
			if cerr := s.cascadeRevoke(ctx, rt.LineageID, now); cerr != nil {
				return nil, cerr
			}
			return nil, ErrReplayDetected
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, mapStoreErr(err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: newOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// RevokeRefreshToken revokes the presented refresh token and its whole
// lineage. Idempotent: revoking an unknown or already-revoked token
// succeeds quietly.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, refreshOpaque string) error {
	now := s.now()

	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetByFingerprint(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return mapStoreErr(err)
	}

	return s.revokeLineage(ctx, rt.LineageID, domain.RevocationReasonLogout, now)
}

// RevokeTokenID records a revocation for an individual access-token id.
// Administrative path; idempotent.
func (s *TokenService) RevokeTokenID(ctx context.Context, tokenID string) error {
	err := s.Store.Revocations().Create(ctx, domain.Revocation{
		TokenID:   tokenID,
		RevokedAt: s.now(),
		Reason:    domain.RevocationReasonAdmin,
	})
	return mapStoreErr(err)
}

// cascadeRevoke kills a lineage after a replay: every refresh token in it
// is revoked and the lineage id lands on the revocation list, which takes
// down outstanding access tokens carrying it as sid.
func (s *TokenService) cascadeRevoke(ctx context.Context, lineageID string, now time.Time) error {
	return s.revokeLineage(ctx, lineageID, domain.RevocationReasonReplay, now)
}

func (s *TokenService) revokeLineage(ctx context.Context, lineageID, reason string, now time.Time) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeLineage(ctx, lineageID); err != nil {
			return err
		}
		return tx.Revocations().Create(ctx, domain.Revocation{
			TokenID:   lineageID,
			RevokedAt: now,
			Reason:    reason,
		})
	})
	return mapStoreErr(err)
}

func (s *TokenService) isRevoked(ctx context.Context, jti, sid string) (bool, error) {
	revoked, err := s.Store.Revocations().IsRevoked(ctx, jti)
	if err != nil {
		return false, mapStoreErr(err)
	}
	if revoked {
		return true, nil
	}
	if sid == "" {
		return false, nil
	}
	revoked, err = s.Store.Revocations().IsRevoked(ctx, sid)
	if err != nil {
		return false, mapStoreErr(err)
	}
	return revoked, nil
}

func (s *TokenService) signAccess(id domain.Identity, lineageID string, now time.Time) (string, error) {
	signer, err := s.Keyring.Active()
	if err != nil {
		return "", ErrKeyUnavailable
	}

	claims := jwtx.NewAccessClaims(id.Subject, lineageID, id.Roles, id.Tenant, s.AccessTTL, s.Issuer, now)
	token, err := signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

func (s *TokenService) buildRefresh(id domain.Identity, lineageID string, now time.Time) (string, domain.RefreshToken, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.RefreshToken{}, fmt.Errorf("generate refresh token: %w", err)
	}

	rec := domain.RefreshToken{
		ID:          idx.New().String(),
		Subject:     id.Subject,
		Tenant:      id.Tenant,
		Roles:       id.Roles,
		LineageID:   lineageID,
		Fingerprint: cryptox.FingerprintToken(opaque),
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.RefreshTTL),
	}
	return opaque, rec, nil
}

// mapVerifyErr folds the jwtx error detail into the public taxonomy. The
// detail is deliberately lost: callers learn expired vs invalid vs no key,
// nothing finer.
func mapVerifyErr(err error) error {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return ErrExpired
	case errors.Is(err, jwtx.ErrKeyUnavailable):
		return ErrKeyUnavailable
	default:
		return ErrInvalidToken
	}
}

func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
