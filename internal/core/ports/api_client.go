package ports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
)

// APIRequest is one call to the CRM backend. Path is relative to the
// configured base URL; Body, when non-nil, is sent as JSON.
type APIRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Envelope is the backend's standard response wrapper. Success is nil when
// the body carried no envelope at all.
type Envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

// APIResponse is a successful backend response, passed through unchanged.
type APIResponse struct {
	Status   int
	Header   http.Header
	Body     []byte
	Envelope Envelope
}

var errNoData = errors.New("response has no data")

// Decode unmarshals the whole body into v.
func (r *APIResponse) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// DecodeData unmarshals the envelope's data field into v.
func (r *APIResponse) DecodeData(v any) error {
	if len(r.Envelope.Data) == 0 {
		return errNoData
	}
	return json.Unmarshal(r.Envelope.Data, v)
}

// APIClient is the request pipeline every domain call goes through.
type APIClient interface {
	Do(ctx context.Context, req APIRequest) (*APIResponse, error)
}
