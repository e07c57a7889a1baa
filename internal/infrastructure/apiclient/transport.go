package apiclient

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

const headerRequestID = "X-Request-ID"

type sentTokenKey struct{}

// sentToken records which bearer token an outgoing request carried so the
// inbound stage can tell a current 401 from a stale one.
type sentToken struct {
	value string
}

func withSentToken(ctx context.Context) (context.Context, *sentToken) {
	st := &sentToken{}
	return context.WithValue(ctx, sentTokenKey{}, st), st
}

// bearerTransport is the outbound stage: it reads the session immediately
// before each request leaves and attaches the token when one is present.
// The token only goes to the backend host; a redirect elsewhere is sent
// without it.
type bearerTransport struct {
	base     http.RoundTripper
	sessions ports.SessionReader
	host     string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	var sess domain.Session
	if strings.EqualFold(req.URL.Host, t.host) {
		sess = t.sessions.Get(req.Context())
	}
	if sess.Token != "" {
		out.Header.Set("Authorization", "Bearer "+sess.Token)
	} else {
		out.Header.Del("Authorization")
	}
	if out.Header.Get(headerRequestID) == "" {
		out.Header.Set(headerRequestID, uuid.NewString())
	}

	if st, ok := req.Context().Value(sentTokenKey{}).(*sentToken); ok && req.Response == nil {
		st.value = sess.Token
	}

	return t.base.RoundTrip(out)
}
