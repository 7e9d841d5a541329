package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// wifi passwords are short opaque secrets handed to the visitor once a
// reservation is confirmed. They are generated randomly per reservation
// and sealed with an AEAD before touching the database.

const wifiPasswordLen = 16

var passwordAlphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// RandomWifiPassword returns a 16-character alphanumeric secret built
// from crypto/rand.
func RandomWifiPassword() (string, error) {
	buf := make([]byte, wifiPasswordLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf), nil
}

// SecretBox seals and opens small secrets with XChaCha20-Poly1305. The
// key is supplied as 64 hex characters (32 bytes) via configuration.
type SecretBox struct {
	aeadKey []byte
}

// NewSecretBox validates the hex key and returns a SecretBox.
func NewSecretBox(hexKey string) (*SecretBox, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("secret key is not valid hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.New("secret key must be 32 bytes (64 hex chars)")
	}
	return &SecretBox{aeadKey: key}, nil
}

// Seal encrypts plain and returns a base64 string of nonce||ciphertext,
// suitable for storing in a VARBINARY/TEXT column.
func (s *SecretBox) Seal(plain string) (string, error) {
	aead, err := chacha20poly1305.NewX(s.aeadKey)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. It fails when the payload was tampered with or
// sealed under a different key.
func (s *SecretBox) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(s.aeadKey)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("sealed payload too short")
	}
	nonce, ct := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
