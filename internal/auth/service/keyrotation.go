package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nightglass/authkit/internal/auth/domain"
	"github.com/nightglass/authkit/internal/auth/store"
	"github.com/nightglass/authkit/pkg/cryptox"
	"github.com/nightglass/authkit/pkg/idx"
	"github.com/nightglass/authkit/pkg/jwtx"
)

// Key lifetime defaults. GracePeriod is the verification overlap a retired
// key gets; KeyTTL is the hard cap on any key's verification window.
const (
	DefaultKeyGracePeriod = 24 * time.Hour
	DefaultKeyTTL         = 90 * 24 * time.Hour
)

// KeyRotationService generates, activates, and retires signing keys.
//
// With a Store, key material is encrypted at rest and survives restarts.
// With Store == nil the service runs ephemeral: keys live only in the
// keyring and every restart starts fresh.
type KeyRotationService struct {
	Store       store.Store // nil for ephemeral mode
	Keyring     *jwtx.Keyring
	Algorithm   string
	RSABits     int
	GracePeriod time.Duration
	KeyTTL      time.Duration

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (s *KeyRotationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *KeyRotationService) gracePeriod() time.Duration {
	if s.GracePeriod > 0 {
		return s.GracePeriod
	}
	return DefaultKeyGracePeriod
}

func (s *KeyRotationService) keyTTL() time.Duration {
	if s.KeyTTL > 0 {
		return s.KeyTTL
	}
	return DefaultKeyTTL
}

// Rotate generates a fresh key, activates it, and moves the previous
// active key into its retirement window. Tokens signed with the old key
// keep verifying until the window closes.
func (s *KeyRotationService) Rotate(ctx context.Context) (domain.SigningKey, error) {
	now := s.now()

	signer, pemData, err := s.generate(now)
	if err != nil {
		return domain.SigningKey{}, err
	}

	notAfter := now.Add(s.gracePeriod())

	rec := domain.SigningKey{
		ID:        idx.New().String(),
		Kid:       signer.KID(),
		Algorithm: s.Algorithm,
		CreatedAt: now,
		ExpiresAt: now.Add(s.keyTTL()),
	}

	if s.Store != nil {
		rec.PrivateKeyEncrypted, err = cryptox.EncryptPrivateKey(pemData)
		if err != nil {
			return domain.SigningKey{}, fmt.Errorf("encrypt signing key: %w", err)
		}

		prevKid := ""
		if prev, err := s.Keyring.Active(); err == nil {
			prevKid = prev.KID()
		}

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.SigningKeys().Create(ctx, rec); err != nil {
				return err
			}
			if prevKid != "" {
				return tx.SigningKeys().Retire(ctx, prevKid, now, notAfter)
			}
			return nil
		})
		if err != nil {
			return domain.SigningKey{}, mapStoreErr(err)
		}
	}

	if err := s.Keyring.Rotate(signer, notAfter); err != nil {
		return domain.SigningKey{}, fmt.Errorf("rotate keyring: %w", err)
	}

	return rec, nil
}

// Bootstrap makes sure the keyring has an active signer.
//
// Persistent mode reloads what the store has: the newest unretired key
// becomes the active signer and any retired keys still inside their
// windows come back as verification-only keys. An empty store gets its
// first key generated. Ephemeral mode always generates.
func (s *KeyRotationService) Bootstrap(ctx context.Context) error {
	now := s.now()

	if s.Store == nil {
		signer, _, err := s.generate(now)
		if err != nil {
			return err
		}
		return s.Keyring.Install(signer)
	}

	keys, err := s.Store.SigningKeys().ListUsable(ctx, now)
	if err != nil {
		return mapStoreErr(err)
	}

	installed := false
	for _, k := range keys {
		pemData, err := cryptox.DecryptPrivateKey(k.PrivateKeyEncrypted)
		if err != nil {
			return fmt.Errorf("decrypt signing key %s: %w", k.Kid, err)
		}
		signer, err := jwtx.NewSigner(k.Algorithm, k.Kid, pemData, k.CreatedAt)
		if err != nil {
			return fmt.Errorf("load signing key %s: %w", k.Kid, err)
		}

		// ListUsable is newest-first, so the first unretired key wins the
		// active slot.
		if k.RetiredAt == nil && !installed {
			if err := s.Keyring.Install(signer); err != nil {
				return err
			}
			installed = true
			continue
		}
		if err := s.Keyring.Restore(signer.VerificationKey(k.ExpiresAt)); err != nil {
			return err
		}
	}

	if installed {
		return nil
	}

	if _, err := s.Rotate(ctx); err != nil {
		return err
	}
	return nil
}

func (s *KeyRotationService) generate(now time.Time) (*jwtx.Signer, []byte, error) {
	kid, err := generateKeyID()
	if err != nil {
		return nil, nil, err
	}

	var pemData []byte
	switch s.Algorithm {
	case jwtx.AlgorithmRS256:
		bits := s.RSABits
		if bits == 0 {
			bits = 2048
		}
		pemData, err = cryptox.GenerateRSAKey(bits)
	case jwtx.AlgorithmEdDSA:
		pemData, err = cryptox.GenerateEd25519Key()
	default:
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", s.Algorithm)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("generate key pair: %w", err)
	}

	signer, err := jwtx.NewSigner(s.Algorithm, kid, pemData, now)
	if err != nil {
		return nil, nil, fmt.Errorf("create signer: %w", err)
	}
	return signer, pemData, nil
}

func generateKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("generate key id: %w", err)
	}
	return fmt.Sprintf("authkit-%s", token), nil
}
