package tapo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"tapo/device"
)

// This transport speaks the plain JSON command protocol. Establishing the
// encrypted session is left to whatever serves the endpoint.

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Msg       string          `json:"msg,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
}

type HTTP struct {
	endpoint string
	client   *http.Client
}

// NewHTTP creates a transport posting commands to endpoint. When token is not
// empty it is passed along as the token query parameter.
func NewHTTP(endpoint string, token string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint '%s': %w", endpoint, err)
	}

	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &HTTP{endpoint: u.String(), client: client}, nil
}

// device.Protocol
var _ device.Protocol = (*HTTP)(nil)

func (h *HTTP) Send(ctx context.Context, req device.Request) (json.RawMessage, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed: %d", req.Method, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: invalid response: %w", req.Method, err)
	}

	if err := CheckError(env.ErrorCode, env.Msg); err != nil {
		log.Printf("%s returned error code %d\n", req.Method, env.ErrorCode)
		return nil, err
	}

	if len(env.Result) == 0 {
		return json.RawMessage(`{}`), nil
	}

	return env.Result, nil
}
