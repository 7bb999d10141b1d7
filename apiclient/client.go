package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Alia5/overdrive/apitypes"
)

// Client provides a high-level interface to the control API of a running
// overdrive server.
type Client struct{ transport *Transport }

// New constructs a client for the API server at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword constructs a client that authenticates with the given password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport, mostly for tests.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

// Ping returns the version and identity of the server.
func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	return do[apitypes.PingResponse](ctx, c, "ping", nil, nil)
}

// Status returns the engine state.
func (c *Client) Status() (*apitypes.StatusResponse, error) {
	return c.StatusCtx(context.Background())
}

func (c *Client) StatusCtx(ctx context.Context) (*apitypes.StatusResponse, error) {
	return do[apitypes.StatusResponse](ctx, c, "overdrive/status", nil, nil)
}

// Enable switches the engine on or off.
func (c *Client) Enable(on bool) (*apitypes.StatusResponse, error) {
	return c.EnableCtx(context.Background(), on)
}

func (c *Client) EnableCtx(ctx context.Context, on bool) (*apitypes.StatusResponse, error) {
	return do[apitypes.StatusResponse](ctx, c, "overdrive/enable", apitypes.EnableRequest{On: &on}, nil)
}

// Layer applies op (on, off or toggle) to layer id.
func (c *Client) Layer(id uint8, op string) (*apitypes.StatusResponse, error) {
	return c.LayerCtx(context.Background(), id, op)
}

func (c *Client) LayerCtx(ctx context.Context, id uint8, op string) (*apitypes.StatusResponse, error) {
	params := map[string]string{"id": fmt.Sprintf("%d", id), "op": op}
	return do[apitypes.StatusResponse](ctx, c, "layer/{id}/{op}", nil, params)
}

// MatrixEvent injects a switch transition.
func (c *Client) MatrixEvent(row, col uint8, pressed bool) (*apitypes.MatrixEventResponse, error) {
	return c.MatrixEventCtx(context.Background(), row, col, pressed)
}

func (c *Client) MatrixEventCtx(ctx context.Context, row, col uint8, pressed bool) (*apitypes.MatrixEventResponse, error) {
	req := apitypes.MatrixEventRequest{Row: &row, Col: &col, Pressed: pressed}
	return do[apitypes.MatrixEventResponse](ctx, c, "matrix/event", req, nil)
}

// Suspend delivers a host suspend.
func (c *Client) Suspend() (*apitypes.StatusResponse, error) {
	return c.PowerCtx(context.Background(), "suspend")
}

// Resume delivers a host resume.
func (c *Client) Resume() (*apitypes.StatusResponse, error) {
	return c.PowerCtx(context.Background(), "resume")
}

func (c *Client) PowerCtx(ctx context.Context, state string) (*apitypes.StatusResponse, error) {
	return do[apitypes.StatusResponse](ctx, c, "power/{state}", nil, map[string]string{"state": state})
}

func do[T any](ctx context.Context, c *Client, path string, payload any, params map[string]string) (*T, error) {
	raw, err := c.transport.DoCtx(ctx, path, payload, params)
	if err != nil {
		return nil, err
	}
	return parse[T](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
