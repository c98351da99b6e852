package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of keys handed to HMAC signers.
const KeySize = 32

var ErrEmptySecret = errors.New("cryptox: empty secret")

// DeriveKey expands an application secret into a KeySize key bound to info
// (HKDF-SHA256). Different info labels yield independent keys, so one
// configured secret can back several signers.
func DeriveKey(secret, info string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, KeySize)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive key %q: %w", info, err)
	}
	return key, nil
}
