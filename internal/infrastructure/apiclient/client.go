// Package apiclient is the request pipeline every backend call goes through.
//
// The outbound stage (bearerTransport) attaches the current session token to
// each request right before it is sent. The inbound stage (Client.Do)
// classifies the response: successes pass through, a 401 clears the session
// and redirects to the login screen once per expired token, and every other
// failure is returned to the caller as an *Error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/api/metrics"
	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
	"github.com/crmdesk/admin-console/pkg/logger"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config configures the pipeline.
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:5000/api.
	BaseURL string
	// Timeout bounds each call. Defaults to 15s. No call is retried.
	Timeout time.Duration
	// LoginPath is where the operator is sent after an authentication failure.
	LoginPath string
	// Transport is the underlying round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Client is the single HTTP client instance shared by all screens.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	sessions  ports.SessionStore
	nav       ports.Navigator
	loginPath string
	gate      recoveryGate
	log       zerolog.Logger
}

// New builds the pipeline around the session store and navigator.
func New(cfg Config, sessions ports.SessionStore, nav ports.Navigator, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{base: rt, sessions: sessions, host: base.Host},
		},
		sessions:  sessions,
		nav:       nav,
		loginPath: cfg.LoginPath,
		log:       log,
	}, nil
}

// Do sends req and returns the response unchanged when it succeeded.
// Failures come back as *Error; network failures are ErrTransportFailure and
// never carry a status.
func (c *Client) Do(ctx context.Context, req ports.APIRequest) (*ports.APIResponse, error) {
	start := time.Now()
	ctx, sent := withSentToken(ctx)

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.observe(req.Method, "transport_error", start)
		c.log.Warn().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("backend unreachable")
		return nil, &Error{Kind: domain.ErrTransportFailure, Method: req.Method, Path: req.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.observe(req.Method, "transport_error", start)
		return nil, &Error{Kind: domain.ErrTransportFailure, Method: req.Method, Path: req.Path, Err: fmt.Errorf("read body: %w", err)}
	}

	out, err := c.inbound(ctx, req, resp, body, sent.value)
	c.observe(req.Method, outcome(err), start)
	return out, err
}

func (c *Client) newRequest(ctx context.Context, req ports.APIRequest) (*http.Request, error) {
	// Path segments arrive already escaped (url.PathEscape on ids).
	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s %s: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build %s %s: %w", method, req.Path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// inbound is the response stage of the pipeline.
func (c *Client) inbound(ctx context.Context, req ports.APIRequest, resp *http.Response, body []byte, sentToken string) (*ports.APIResponse, error) {
	env := decodeEnvelope(body)
	fail := func(kind error) *Error {
		return &Error{
			Kind:    kind,
			Method:  req.Method,
			Path:    req.Path,
			Status:  resp.StatusCode,
			Message: env.Message,
			Body:    body,
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.recoverSession(ctx, sentToken)
		return nil, fail(domain.ErrAuthenticationExpired)
	case resp.StatusCode >= http.StatusInternalServerError:
		c.log.Error().Int("status", resp.StatusCode).Str("method", req.Method).Str("path", req.Path).Msg("backend failure")
		return nil, fail(domain.ErrServerFailure)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fail(domain.ErrValidationFailure)
	case env.Success != nil && !*env.Success:
		return nil, fail(domain.ErrValidationFailure)
	}

	return &ports.APIResponse{
		Status:   resp.StatusCode,
		Header:   resp.Header,
		Body:     body,
		Envelope: env,
	}, nil
}

// recoverSession runs the clear-and-redirect sequence at most once per
// expired token, and never for a token that is no longer the current one.
// The clear itself is conditional on the token, so a login landing after the
// gate was claimed keeps its session.
func (c *Client) recoverSession(ctx context.Context, sentToken string) {
	ctx = context.WithoutCancel(ctx)
	current := c.sessions.Get(ctx)

	result := c.gate.claim(sentToken, current.Token)
	if result == recoveryRun {
		cleared, err := c.sessions.ClearIf(ctx, sentToken)
		switch {
		case err != nil:
			c.log.Error().Err(err).Msg("failed to clear session after authentication failure")
		case !cleared:
			result = recoveryStale
		}
	}
	metrics.AuthRecoveriesTotal.WithLabelValues(string(result)).Inc()
	if result != recoveryRun {
		c.log.Debug().Str("result", string(result)).Msg("authentication failure already handled")
		return
	}

	c.nav.Redirect(ctx, c.loginPath)
	c.log.Warn().
		Str("token", logger.Fingerprint(sentToken)).
		Str("redirect", c.loginPath).
		Msg("authentication expired, session cleared")
}

func decodeEnvelope(body []byte) ports.Envelope {
	var env ports.Envelope
	if len(body) == 0 {
		return env
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ports.Envelope{}
	}
	return env
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAuthenticationExpired):
		return "auth_expired"
	case errors.Is(err, domain.ErrServerFailure):
		return "server_error"
	case errors.Is(err, domain.ErrTransportFailure):
		return "transport_error"
	default:
		return "rejected"
	}
}

func (c *Client) observe(method, result string, start time.Time) {
	metrics.APIRequestsTotal.WithLabelValues(method, result).Inc()
	metrics.APIRequestDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
