package gateway

import (
	"net/http"

	"flightdesk/internal/logger"
)

// TokenSource yields the current session token. *session.Store implements it.
type TokenSource interface {
	Token() (string, bool)
}

// Authenticator attaches "Authorization: Bearer <token>" to every outbound
// request while a session token exists. The caller's request is never
// modified: a clone carries the header.
type Authenticator struct {
	Tokens TokenSource
	Next   http.RoundTripper
}

func NewAuthenticator(tokens TokenSource, next http.RoundTripper) *Authenticator {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Authenticator{Tokens: tokens, Next: next}
}

func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	token, ok := a.Tokens.Token()
	if !ok {
		return a.Next.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)
	return a.Next.RoundTrip(authed)
}

// requestIDTransport stamps X-Request-ID, reusing the id of the shell
// request that triggered the call when there is one.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-ID") != "" {
		return t.next.RoundTrip(req)
	}

	id, ok := logger.RequestIDFromContext(req.Context())
	if !ok {
		id = logger.NewRequestID()
	}
	stamped := req.Clone(req.Context())
	stamped.Header.Set("X-Request-ID", id)
	return t.next.RoundTrip(stamped)
}
