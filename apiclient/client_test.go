package apiclient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Alia5/overdrive/apiclient"
	"github.com/Alia5/overdrive/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	path    string
	payload any
	params  map[string]string
}

// testClient constructs a client backed by an in-memory responder keyed by
// path pattern. If err is non-nil every request fails with it.
func testClient(responses map[string]string, err error, calls *[]call) *apiclient.Client {
	return apiclient.WithTransport(apiclient.NewMockTransport(func(path string, payload any, params map[string]string) (string, error) {
		if calls != nil {
			*calls = append(*calls, call{path, payload, params})
		}
		if err != nil {
			return "", err
		}
		return responses[path], nil
	}))
}

func TestHighLevelClient(t *testing.T) {
	const status = `{"enabled":true,"suspended":false,"active":2,"effective":3,"layers":[0,1],"keymapLayers":3,"pending":0}`
	tests := []struct {
		name      string
		responses map[string]string
		err       error
		call      func(c *apiclient.Client) (any, error)
		wantCall  call
		want      any
		wantErr   string
	}{
		{
			name:      "ping",
			responses: map[string]string{"ping": `{"server":"overdrive","version":"1.0"}`},
			call:      func(c *apiclient.Client) (any, error) { return c.Ping() },
			wantCall:  call{path: "ping"},
			want:      &apitypes.PingResponse{Server: "overdrive", Version: "1.0"},
		},
		{
			name:      "status",
			responses: map[string]string{"overdrive/status": status},
			call:      func(c *apiclient.Client) (any, error) { return c.Status() },
			wantCall:  call{path: "overdrive/status"},
			want: &apitypes.StatusResponse{
				Enabled: true, Active: 2, Effective: 3, Layers: []int{0, 1}, KeymapLayers: 3,
			},
		},
		{
			name:      "layer",
			responses: map[string]string{"layer/{id}/{op}": status},
			call:      func(c *apiclient.Client) (any, error) { return c.Layer(1, "on") },
			wantCall:  call{path: "layer/{id}/{op}", params: map[string]string{"id": "1", "op": "on"}},
			want: &apitypes.StatusResponse{
				Enabled: true, Active: 2, Effective: 3, Layers: []int{0, 1}, KeymapLayers: 3,
			},
		},
		{
			name:      "matrix event",
			responses: map[string]string{"matrix/event": `{"result":"consumed"}`},
			call:      func(c *apiclient.Client) (any, error) { return c.MatrixEvent(7, 5, true) },
			wantCall: call{path: "matrix/event", payload: apitypes.MatrixEventRequest{
				Row: ptr[uint8](7), Col: ptr[uint8](5), Pressed: true,
			}},
			want: &apitypes.MatrixEventResponse{Result: "consumed"},
		},
		{
			name:      "structured error",
			responses: map[string]string{"layer/{id}/{op}": `{"status":400,"title":"Bad Request","detail":"invalid layer op \"x\""}`},
			call:      func(c *apiclient.Client) (any, error) { return c.Layer(1, "x") },
			wantErr:   `400 Bad Request: invalid layer op "x"`,
		},
		{
			name:    "transport failure",
			err:     errors.New("dial fail"),
			call:    func(c *apiclient.Client) (any, error) { return c.Suspend() },
			wantErr: "dial fail",
		},
		{
			name:    "blank response",
			call:    func(c *apiclient.Client) (any, error) { return c.Resume() },
			wantErr: "empty response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []call
			c := testClient(tt.responses, tt.err, &calls)
			got, err := tt.call(c)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantCall.path, calls[0].path)
			if tt.wantCall.params != nil {
				assert.Equal(t, tt.wantCall.params, calls[0].params)
			}
			if tt.wantCall.payload != nil {
				assert.Equal(t, tt.wantCall.payload, calls[0].payload)
			}
		})
	}
}

func TestEnablePayload(t *testing.T) {
	var calls []call
	c := testClient(map[string]string{"overdrive/enable": `{"enabled":false}`}, nil, &calls)
	got, err := c.Enable(false)
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	req, ok := calls[0].payload.(apitypes.EnableRequest)
	require.True(t, ok)
	require.NotNil(t, req.On)
	assert.False(t, *req.On)
}

func TestOpenOutputWithMockTransport(t *testing.T) {
	c := testClient(nil, nil, nil)
	_, err := c.OpenOutput(context.Background())
	assert.ErrorContains(t, err, "not supported with mock transport")
}

func TestContextCancellation(t *testing.T) {
	c := apiclient.New("127.0.0.1:9")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.StatusCtx(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func ptr[T any](v T) *T { return &v }
