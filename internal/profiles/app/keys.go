package app

import (
	"fmt"

	"github.com/aussiebroadwan/profiles/pkg/cryptox"
	"github.com/aussiebroadwan/profiles/pkg/jwtx"
)

// Issuer stamped into every CSRF and flash token.
const tokenIssuer = "profiles"

// HKDF info labels. Changing one invalidates every outstanding token of
// that kind.
const (
	csrfKeyInfo  = "profiles/csrf/v1"
	flashKeyInfo = "profiles/flash/v1"
)

// Signers holds one HS256 signer per cookie purpose, each with its own key
// derived from SECRET_KEY.
type Signers struct {
	CSRF  *jwtx.HS256Signer
	Flash *jwtx.HS256Signer
}

// InitSigners derives the per-purpose keys from the configured secret.
func InitSigners(secret string) (Signers, error) {
	csrf, err := newSigner(secret, csrfKeyInfo)
	if err != nil {
		return Signers{}, fmt.Errorf("csrf signer: %w", err)
	}

	flash, err := newSigner(secret, flashKeyInfo)
	if err != nil {
		return Signers{}, fmt.Errorf("flash signer: %w", err)
	}

	return Signers{CSRF: csrf, Flash: flash}, nil
}

func newSigner(secret, info string) (*jwtx.HS256Signer, error) {
	key, err := cryptox.DeriveKey(secret, info)
	if err != nil {
		return nil, err
	}
	return jwtx.NewHS256Signer(key, tokenIssuer)
}
