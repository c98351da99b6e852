package httpx

import "context"

type ctxKey string

const (
	ctxKeyCSRF ctxKey = "csrf"
)

// csrfState is what the CSRF middleware leaves behind for handlers: the nonce
// bound to this browser and a way to mint form tokens for it.
type csrfState struct {
	nonce string
	mint  func(nonce string) (string, error)
}

func withCSRF(ctx context.Context, st *csrfState) context.Context {
	return context.WithValue(ctx, ctxKeyCSRF, st)
}

func csrfFromCtx(ctx context.Context) *csrfState {
	st, _ := ctx.Value(ctxKeyCSRF).(*csrfState)
	return st
}
