package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nightglass/authkit/internal/auth/domain"
	"github.com/nightglass/authkit/internal/auth/identity"
	"github.com/nightglass/authkit/pkg/slogx"
)

// LoginService is the authentication endpoint's engine. Credential
// checking is delegated to the identity directory; this service only
// orchestrates the exchange and the token lifecycle around it.
type LoginService struct {
	Identity identity.Verifier
	Tokens   *TokenService
}

// PasswordLogin exchanges a username/secret pair for a token pair. Every
// rejection is ErrInvalidCredentials; the caller cannot learn whether the
// username exists.
func (s *LoginService) PasswordLogin(ctx context.Context, username, secret string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return nil, ErrInvalidCredentials
	}

	id, err := s.Identity.VerifyCredentials(ctx, username, secret)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			l.Info("login rejected", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		l.Error("identity directory unreachable", slog.Any("error", err))
		return nil, err
	}

	pair, err := s.Tokens.IssuePair(ctx, id)
	if err != nil {
		return nil, err
	}

	l.Info("login succeeded", slog.String("subject", id.Subject))
	return pair, nil
}

// Refresh rotates the presented refresh token into a new pair.
func (s *LoginService) Refresh(ctx context.Context, refreshOpaque string) (*domain.TokenPair, error) {
	if strings.TrimSpace(refreshOpaque) == "" {
		return nil, ErrInvalidToken
	}
	return s.Tokens.RotateRefreshToken(ctx, refreshOpaque)
}

// Logout revokes the presented refresh token and its lineage. Idempotent.
func (s *LoginService) Logout(ctx context.Context, refreshOpaque string) error {
	if strings.TrimSpace(refreshOpaque) == "" {
		return nil
	}
	return s.Tokens.RevokeRefreshToken(ctx, refreshOpaque)
}
