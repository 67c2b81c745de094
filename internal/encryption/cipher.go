package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	"promptbench/internal/errs"
)

const (
	keySize   = 32
	nonceSize = 12
	tagSize   = 16
)

const hkdfInfo = "promptbench user api keys"

// Cipher encrypts short secrets with AES-256-GCM. Output layout is
// base64(nonce | tag | ciphertext).
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from the process-wide secret. A 64 character hex
// secret is used as the key directly; anything else is stretched with HKDF-SHA256.
func NewCipher(secret string) (*Cipher, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("encryption secret is empty")
	}
	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new aes cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

func deriveKey(secret string) ([]byte, error) {
	if len(secret) == keySize*2 {
		if key, err := hex.DecodeString(secret); err == nil {
			return key, nil
		}
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	body, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	out := make([]byte, 0, nonceSize+tagSize+len(body))
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, body...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt opens a value produced by Encrypt. Any tampering fails with errs.ErrDecryption.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: bad encoding", errs.ErrDecryption)
	}
	if len(data) < nonceSize+tagSize {
		return "", fmt.Errorf("%w: ciphertext too short", errs.ErrDecryption)
	}
	nonce := data[:nonceSize]
	tag := data[nonceSize : nonceSize+tagSize]
	body := data[nonceSize+tagSize:]

	sealed := make([]byte, 0, len(body)+tagSize)
	sealed = append(sealed, body...)
	sealed = append(sealed, tag...)

	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", errs.ErrDecryption)
	}
	return string(plain), nil
}

// GenerateSecret returns a random 32 byte key, hex encoded.
func GenerateSecret() (string, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}
