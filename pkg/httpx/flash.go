package httpx

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/profiles/pkg/jwtx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	FlashCookieName = "flash"

	DefaultFlashTTL = 5 * time.Minute
)

// Flash categories understood by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

type flashClaims struct {
	jwt.RegisteredClaims
	Flashes []Flash `json:"fl"`
}

// FlashStore keeps pending flashes in a signed cookie so they survive the
// redirect that usually follows a form post.
type FlashStore struct {
	Signer *jwtx.HS256Signer
	TTL    time.Duration
	Secure bool
}

// Add queues flashes for the next page, keeping any that arrived with r and
// have not been shown yet.
func (s *FlashStore) Add(w http.ResponseWriter, r *http.Request, flashes ...Flash) error {
	all := append(s.read(r), flashes...)

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultFlashTTL
	}

	token, err := s.Signer.Sign(flashClaims{
		RegisteredClaims: s.Signer.Registered("", ttl),
		Flashes:          all,
	})
	if err != nil {
		return err
	}

	http.SetCookie(w, s.cookie(token, int(ttl.Seconds())))
	return nil
}

// Pop returns the pending flashes and clears them.
func (s *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	if _, err := r.Cookie(FlashCookieName); err != nil {
		return nil
	}
	http.SetCookie(w, s.cookie("", -1))
	return s.read(r)
}

func (s *FlashStore) read(r *http.Request) []Flash {
	c, err := r.Cookie(FlashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	var claims flashClaims
	if err := s.Signer.Verify(c.Value, &claims); err != nil {
		slogx.FromContext(r.Context()).Debug("dropping flash cookie", "err", err)
		return nil
	}
	return claims.Flashes
}

func (s *FlashStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
