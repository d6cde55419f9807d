// Package identity abstracts the external identity directory that owns
// credential material. The token engine never sees passwords at rest; it
// hands the presented credentials to a Verifier and gets back an identity
// or a rejection.
package identity

import (
	"context"
	"errors"

	"github.com/nightglass/authkit/internal/auth/domain"
)

var (
	// ErrInvalidCredentials covers every rejection: unknown subject, wrong
	// secret, disabled account. Callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("identity: invalid credentials")

	// ErrUnavailable reports that the directory could not be reached or
	// answered with a server-side failure.
	ErrUnavailable = errors.New("identity: unavailable")
)

// Verifier checks a username/secret pair against the directory.
type Verifier interface {
	VerifyCredentials(ctx context.Context, username, secret string) (domain.Identity, error)
}
