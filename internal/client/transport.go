// ABOUTME: HTTP transports shared by the anonymous and authenticated clients
// ABOUTME: Adds request IDs and bearer tokens taken from the session

package client

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/markalston/petcare-cli/internal/debuglog"
	"golang.org/x/oauth2"
)

// RequestIDHeader correlates CLI log lines with server logs.
const RequestIDHeader = "X-Request-ID"

// TokenFunc adapts a token getter (typically session.Store.Token) to an
// oauth2.TokenSource. An empty token yields ErrNotAuthenticated.
type TokenFunc func() string

// Token implements oauth2.TokenSource
func (f TokenFunc) Token() (*oauth2.Token, error) {
	tok := f()
	if tok == "" {
		return nil, ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)
	}

	log := debuglog.WithField("request_id", id)
	log.Debugf("%s %s", req.Method, req.URL.Path)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		log.Debugf("%s %s failed: %v", req.Method, req.URL.Path, err)
		return nil, err
	}
	log.Debugf("%s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)
	return resp, nil
}

func newRequestIDTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &requestIDTransport{base: base}
}

func newBearerTransport(tokens TokenFunc, base http.RoundTripper) http.RoundTripper {
	return &oauth2.Transport{
		Source: tokens,
		Base:   newRequestIDTransport(base),
	}
}
