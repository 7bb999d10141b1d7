package api_test

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/Alia5/overdrive/internal/log"
	"github.com/Alia5/overdrive/internal/server/api"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
	th "github.com/Alia5/overdrive/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(req *api.Request, res *api.Response, logger *slog.Logger) error {
	res.JSON = fmt.Sprintf(`{"params":%d,"payload":%q}`, len(req.Params), req.Payload)
	return nil
}

func TestRouterMatch(t *testing.T) {
	r := api.NewRouter()
	r.Register("ping", echo)
	r.Register("layer/{id}/{op}", echo)
	r.RegisterStream("output", func(context.Context, net.Conn, map[string]string, *slog.Logger) error { return nil })

	tests := []struct {
		path       string
		wantMatch  bool
		wantParams map[string]string
	}{
		{"ping", true, map[string]string{}},
		{"PING", true, map[string]string{}},
		{"layer/1/on", true, map[string]string{"id": "1", "op": "on"}},
		{"layer/1", false, nil},
		{"layer/1/on/x", false, nil},
		{"output", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h, params := r.Match(tt.path)
			assert.Equal(t, tt.wantMatch, h != nil)
			assert.Equal(t, tt.wantParams, params)
		})
	}

	sh, _ := r.MatchStream("output")
	assert.NotNil(t, sh)
}

func TestServerFraming(t *testing.T) {
	addr := th.StartAPIServer(t, api.ServerConfig{}, func(r *api.Router) {
		r.Register("echo", echo)
		r.Register("fail", func(*api.Request, *api.Response, *slog.Logger) error {
			return apierror.ErrNotFound("nothing here")
		})
		r.Register("boom", func(*api.Request, *api.Response, *slog.Logger) error {
			return fmt.Errorf("boom")
		})
		r.Register("empty", func(*api.Request, *api.Response, *slog.Logger) error { return nil })
	})

	tests := []struct {
		name string
		cmd  string
		want string
	}{
		{"no payload", "echo", `{"params":0,"payload":""}`},
		{"space payload", "echo a b", `{"params":0,"payload":"a b"}`},
		{"newline payload", "echo\n{\n}", `{"params":0,"payload":"{\n}"}`},
		{"case insensitive", "ECHO x", `{"params":0,"payload":"x"}`},
		{"api error", "fail", `{"status":404,"title":"Not Found","detail":"nothing here"}`},
		{"plain error", "boom", `{"status":500,"title":"Internal Server Error","detail":"boom"}`},
		{"empty request", "", `{"status":400,"title":"Bad Request","detail":"empty request"}`},
		{"empty path", " x", `{"status":400,"title":"Bad Request","detail":"empty path"}`},
		{"unknown", "nope", `{"status":404,"title":"Not Found","detail":"unknown path: nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, th.ExecCmd(t, addr, tt.cmd))
		})
	}
	assert.Equal(t, "", th.ExecCmd(t, addr, "empty"))
}

func TestStreamEndsOnClose(t *testing.T) {
	srv, err := api.New("127.0.0.1:0", api.ServerConfig{}, log.Discard())
	require.NoError(t, err)
	ended := make(chan struct{})
	srv.Router().RegisterStream("wait", func(ctx context.Context, conn net.Conn, _ map[string]string, _ *slog.Logger) error {
		<-ctx.Done()
		close(ended)
		return nil
	})
	require.NoError(t, srv.Start())

	c, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Write([]byte("wait\x00"))
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	srv.Close()
	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("stream handler did not end")
	}
	_ = c.SetReadDeadline(time.Now().Add(time.Second))
	_, err = c.Read(make([]byte, 1))
	assert.Error(t, err)
}

func TestAddrBeforeStart(t *testing.T) {
	srv, err := api.New("127.0.0.1:0", api.ServerConfig{}, log.Discard())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}
