package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/crypto/hkdf"
)

var (
	masterKeyOnce sync.Once
	masterKey     []byte
	masterKeyErr  error
	masterKeyPath string
)

// hkdfInfo binds derived keys to this purpose so the same master key file
// cannot silently be reused for a different scheme later.
const hkdfInfo = "authkit/signing-key-encryption/v1"

// SetMasterKeyPath configures where the master encryption key material is
// loaded from. Must be called before the first encrypt/decrypt.
func SetMasterKeyPath(path string) {
	masterKeyPath = path
}

// loadMasterKey reads key material and derives a 32-byte AES-256 key via
// HKDF-SHA256. Sources, in order:
//  1. the file configured via SetMasterKeyPath
//  2. the AUTHKIT_MASTER_KEY environment variable
//  3. a fresh random key (dev only; persisted keys won't survive restart)
func loadMasterKey() ([]byte, error) {
	var material []byte

	switch {
	case masterKeyPath != "":
		data, err := os.ReadFile(masterKeyPath)
		if err != nil {
			return nil, fmt.Errorf("cryptox: read master key file: %w", err)
		}
		material = data
	case os.Getenv("AUTHKIT_MASTER_KEY") != "":
		material = []byte(os.Getenv("AUTHKIT_MASTER_KEY"))
	default:
		material = make([]byte, 32)
		if _, err := rand.Read(material); err != nil {
			return nil, fmt.Errorf("cryptox: generate ephemeral master key: %w", err)
		}
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, material, nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive master key: %w", err)
	}
	return key, nil
}

func getMasterKey() ([]byte, error) {
	masterKeyOnce.Do(func() {
		masterKey, masterKeyErr = loadMasterKey()
	})
	return masterKey, masterKeyErr
}

// EncryptPrivateKey encrypts PEM-encoded private key material with
// AES-256-GCM. Output layout: [nonce][ciphertext+tag].
func EncryptPrivateKey(pemData []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, pemData, nil), nil
}

// DecryptPrivateKey reverses EncryptPrivateKey.
func DecryptPrivateKey(encrypted []byte) ([]byte, error) {
	gcm, err := newGCM()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(encrypted) < nonceSize {
		return nil, fmt.Errorf("cryptox: ciphertext too short")
	}

	nonce, ciphertext := encrypted[:nonceSize], encrypted[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decrypt private key: %w", err)
	}
	return plaintext, nil
}

func newGCM() (cipher.AEAD, error) {
	key, err := getMasterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create gcm: %w", err)
	}
	return gcm, nil
}

// ResetMasterKeyForTesting clears the master key singleton. Tests only.
func ResetMasterKeyForTesting() {
	masterKeyOnce = sync.Once{}
	masterKey = nil
	masterKeyErr = nil
}
