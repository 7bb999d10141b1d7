package auth_test

import (
	"bufio"
	"errors"
	"io"
	"net"
	"testing"

	"github.com/Alia5/overdrive/apitypes"
	"github.com/Alia5/overdrive/internal/server/api/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	k1, err := auth.GenerateKey()
	require.NoError(t, err)
	k2, err := auth.GenerateKey()
	require.NoError(t, err)
	assert.Len(t, k1, auth.AutoGenKeyLength)
	assert.NotEqual(t, k1, k2)
	for _, c := range k1 {
		assert.Contains(t, auth.Base62Chars, string(c))
	}
}

func TestDeriveKey(t *testing.T) {
	_, err := auth.DeriveKey("")
	assert.ErrorIs(t, err, auth.ErrEmptyPassword)

	a, err := auth.DeriveKey("hunter2")
	require.NoError(t, err)
	b, err := auth.DeriveKey("hunter2")
	require.NoError(t, err)
	c, err := auth.DeriveKey("hunter3")
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDeriveSessionKey(t *testing.T) {
	key := []byte("k")
	s1 := auth.DeriveSessionKey(key, []byte("server"), []byte("client"))
	s2 := auth.DeriveSessionKey(key, []byte("client"), []byte("server"))
	assert.Len(t, s1, 32)
	assert.NotEqual(t, s1, s2)
}

type result struct {
	conn net.Conn
	err  error
}

func handshake(t *testing.T, clientPw, serverPw string) (client, server result) {
	t.Helper()
	ck, err := auth.DeriveKey(clientPw)
	require.NoError(t, err)
	sk, err := auth.DeriveKey(serverPw)
	require.NoError(t, err)

	c, s := net.Pipe()
	t.Cleanup(func() { c.Close(); s.Close() })
	done := make(chan result, 1)
	go func() {
		r := bufio.NewReader(s)
		ok, err := auth.IsAuthHandshake(r)
		if err != nil || !ok {
			done <- result{err: errors.New("no handshake")}
			return
		}
		conn, err := auth.Server(s, r, sk)
		if err != nil {
			s.Close()
		}
		done <- result{conn: conn, err: err}
	}()
	cc, cerr := auth.Client(c, ck)
	return result{cc, cerr}, <-done
}

func TestHandshake(t *testing.T) {
	client, server := handshake(t, "secret", "secret")
	require.NoError(t, client.err)
	require.NoError(t, server.err)

	go func() { _, _ = client.conn.Write([]byte("ping\x00")) }()
	buf := make([]byte, 5)
	_, err := io.ReadFull(server.conn, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping\x00", string(buf))

	go func() { _, _ = server.conn.Write([]byte("{}\n")) }()
	buf = make([]byte, 3)
	_, err = io.ReadFull(client.conn, buf)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(buf))
}

func TestHandshakeWrongPassword(t *testing.T) {
	client, server := handshake(t, "secret", "other")
	var apiErr apitypes.ApiError
	require.ErrorAs(t, server.err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	require.Error(t, client.err)
	assert.Contains(t, client.err.Error(), "invalid password")
}

func TestIsAuthHandshake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{"magic", auth.HandshakeMagic + "rest", true, false},
		{"plain request", "ping\x00", false, false},
		{"short", "p", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s := net.Pipe()
			defer s.Close()
			go func() { _, _ = c.Write([]byte(tt.input)); c.Close() }()
			got, err := auth.IsAuthHandshake(bufio.NewReader(s))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
