package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/profiles/pkg/cryptox"
	"github.com/aussiebroadwan/profiles/pkg/jwtx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CSRFCookieName = "csrf_nonce"
	CSRFFieldName  = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"

	DefaultCSRFTTL = time.Hour
)

var (
	ErrCSRFMissing  = errors.New("httpx: csrf token missing")
	ErrCSRFMismatch = errors.New("httpx: csrf token does not match this browser")
	ErrCSRFNoState  = errors.New("httpx: csrf middleware not installed")
)

// CSRFConfig configures the CSRF middleware.
type CSRFConfig struct {
	Signer *jwtx.HS256Signer
	TTL    time.Duration
	Secure bool
}

type csrfClaims struct {
	jwt.RegisteredClaims
	NonceFingerprint string `json:"nf"`
}

// CSRF implements double-submit protection. Each browser gets a random nonce
// cookie; forms carry a signed, expiring token bound to that nonce's
// fingerprint. Unsafe methods without a matching token get a 400.
func CSRF(cfg CSRFConfig) Middleware {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCSRFTTL
	}

	mint := func(nonce string) (string, error) {
		return cfg.Signer.Sign(csrfClaims{
			RegisteredClaims: cfg.Signer.Registered("", cfg.TTL),
			NonceFingerprint: cryptox.FingerprintToken(nonce),
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			nonce := ""
			if c, err := r.Cookie(CSRFCookieName); err == nil && len(c.Value) == nonceLen {
				nonce = c.Value
			}
			hadNonce := nonce != ""

			if !hadNonce {
				var err error
				nonce, err = cryptox.GenerateToken(cryptox.TokenSize128)
				if err != nil {
					log.Error("csrf: generate nonce", "err", err)
					WriteError(w, r, http.StatusInternalServerError, "server_error", "Internal server error")
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    nonce,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if !isSafeMethod(r.Method) {
				err := ErrCSRFMissing
				if hadNonce {
					err = verifyCSRF(cfg.Signer, nonce, submittedCSRFToken(r))
				}
				if err != nil {
					log.Warn("csrf check failed", "err", err)
					WriteError(w, r, http.StatusBadRequest, "csrf_failed",
						"The form has expired or is invalid. Please go back, reload the page and try again.")
					return
				}
			}

			ctx := withCSRF(r.Context(), &csrfState{nonce: nonce, mint: mint})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFToken returns a fresh form token for the browser behind r.
func CSRFToken(r *http.Request) (string, error) {
	st := csrfFromCtx(r.Context())
	if st == nil {
		return "", ErrCSRFNoState
	}
	return st.mint(st.nonce)
}

// nonceLen is the base64url length of a TokenSize128 nonce.
const nonceLen = 22

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func submittedCSRFToken(r *http.Request) string {
	if v := r.Header.Get(CSRFHeaderName); v != "" {
		return v
	}
	return r.PostFormValue(CSRFFieldName)
}

func verifyCSRF(s *jwtx.HS256Signer, nonce, token string) error {
	if token == "" {
		return ErrCSRFMissing
	}

	var claims csrfClaims
	if err := s.Verify(token, &claims); err != nil {
		return err
	}
	if !cryptox.EqualTokens(claims.NonceFingerprint, cryptox.FingerprintToken(nonce)) {
		return ErrCSRFMismatch
	}
	return nil
}
