package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinHMACKeySize is the shortest key NewHS256Signer accepts.
const MinHMACKeySize = 32

// HS256Signer signs and verifies tokens with a shared secret. Tokens are
// only ever verified by the process that minted them.
type HS256Signer struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// NewHS256Signer creates a signer bound to issuer. Tokens minted by a signer
// with a different issuer fail verification even under the same key.
func NewHS256Signer(key []byte, issuer string) (*HS256Signer, error) {
	if len(key) < MinHMACKeySize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrKeyTooShort, len(key), MinHMACKeySize)
	}

	k := make([]byte, len(key))
	copy(k, key)
	return &HS256Signer{key: k, issuer: issuer, now: time.Now}, nil
}

// WithClock returns a copy of the signer that reads time from now.
func (s *HS256Signer) WithClock(now func() time.Time) *HS256Signer {
	c := *s
	c.now = now
	return &c
}

func (s *HS256Signer) Alg() string    { return jwt.SigningMethodHS256.Alg() }

// Registered returns registered claims stamped with this signer's issuer and
// clock.
func (s *HS256Signer) Registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	rc := NewRegisteredClaims(subject, ttl, s.now())
	rc.Issuer = s.issuer
	return rc
}

// Sign serialises claims into a compact HS256 JWT.
func (s *HS256Signer) Sign(claims jwt.Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	out, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return out, nil
}

// Verify parses token into claims, checking the algorithm, signature, issuer
// and expiry. A token without an exp claim is rejected.
func (s *HS256Signer) Verify(token string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	tok, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return classify(err)
	}
	if !tok.Valid {
		return ErrInvalidClaim
	}
	return nil
}
