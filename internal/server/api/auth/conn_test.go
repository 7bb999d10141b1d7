package auth_test

import (
	"bytes"
	"io"
	"net"
	"testing"

	"github.com/Alia5/overdrive/internal/server/api/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	ca, err := auth.WrapConn(a, key)
	require.NoError(t, err)
	cb, err := auth.WrapConn(b, key)
	require.NoError(t, err)

	msgs := [][]byte{[]byte("hello"), bytes.Repeat([]byte{0xE0}, 10000), {0}}
	go func() {
		for _, m := range msgs {
			_, _ = ca.Write(m)
		}
	}()
	for _, m := range msgs {
		got := make([]byte, len(m))
		_, err := io.ReadFull(cb, got)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestConnWrongKey(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	ca, err := auth.WrapConn(a, bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)
	cb, err := auth.WrapConn(b, bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)

	go func() { _, _ = ca.Write([]byte("secret")) }()
	_, err = cb.Read(make([]byte, 16))
	assert.Error(t, err)
}

func TestWrapConnBadKey(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	_, err := auth.WrapConn(a, []byte("short"))
	assert.Error(t, err)
}
