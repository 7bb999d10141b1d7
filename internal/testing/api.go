// Package testing holds helpers shared by control API tests.
package testing

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/Alia5/overdrive/internal/log"
	"github.com/Alia5/overdrive/internal/server/api"
	"github.com/stretchr/testify/require"
)

// StartAPIServer starts an API server on a free loopback port and calls
// register so the caller can add the handlers it needs. The server is closed
// when the test ends.
func StartAPIServer(t *testing.T, cfg api.ServerConfig, register func(r *api.Router)) (addr string) {
	t.Helper()
	srv, err := api.New("127.0.0.1:0", cfg, log.Discard())
	require.NoError(t, err)
	if register != nil {
		register(srv.Router())
	}
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Close)
	return srv.Addr()
}

// ExecCmd dials the API server, sends cmd and reads the response line
// without its trailing newline.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()

	_, err = fmt.Fprintf(c, "%s\x00", cmd)
	require.NoError(t, err)

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}
	return strings.TrimSuffix(line, "\n")
}
