package auth

import (
	"bufio"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/Alia5/overdrive/apitypes"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
)

// Handshake wire format:
//
//	client: magic | client nonce | HMAC(key, context | client nonce)
//	server: "OK\x00" | server nonce, or a problem+json line
const (
	HandshakeMagic = "eOD1\x00"
	NonceSize      = 32
	authContext    = "overdrive-auth-v1"
	handshakeOK    = "OK\x00"
)

// IsAuthHandshake reports whether the next bytes in r are the handshake magic.
func IsAuthHandshake(r *bufio.Reader) (bool, error) {
	b, err := r.Peek(len(HandshakeMagic))
	if err != nil {
		return false, err
	}
	return string(b) == HandshakeMagic, nil
}

func proof(key, clientNonce []byte) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(authContext))
	_, _ = mac.Write(clientNonce)
	return mac.Sum(nil)
}

func nonce() ([]byte, error) {
	n := make([]byte, NonceSize)
	if _, err := rand.Read(n); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return n, nil
}

// Client authenticates conn with key and returns the encrypted connection.
func Client(conn net.Conn, key []byte) (net.Conn, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("handshake: missing key")
	}
	clientNonce, err := nonce()
	if err != nil {
		return nil, err
	}
	msg := append([]byte(HandshakeMagic), clientNonce...)
	msg = append(msg, proof(key, clientNonce)...)
	if _, err := conn.Write(msg); err != nil {
		return nil, fmt.Errorf("write handshake: %w", err)
	}

	r := bufio.NewReader(conn)
	prefix := make([]byte, len(handshakeOK))
	if _, err := io.ReadFull(r, prefix); err != nil {
		if err == io.EOF {
			return nil, apierror.ErrUnauthorized("invalid password")
		}
		return nil, fmt.Errorf("read handshake response: %w", err)
	}
	if string(prefix) != handshakeOK {
		rest, _ := io.ReadAll(r)
		line := strings.TrimSuffix(string(append(prefix, rest...)), "\n")
		var apiErr apitypes.ApiError
		if err := json.Unmarshal([]byte(line), &apiErr); err == nil && (apiErr.Status != 0 || apiErr.Title != "") {
			return nil, &apiErr
		}
		return nil, fmt.Errorf("invalid handshake response from server: %q", line)
	}
	serverNonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(r, serverNonce); err != nil {
		return nil, fmt.Errorf("read server nonce: %w", err)
	}
	return WrapConn(conn, DeriveSessionKey(key, serverNonce, clientNonce))
}

// Server completes a handshake whose magic is waiting in r and returns the
// encrypted connection. A wrong password yields an Unauthorized ApiError and
// nothing is written to conn.
func Server(conn net.Conn, r *bufio.Reader, key []byte) (net.Conn, error) {
	if _, err := r.Discard(len(HandshakeMagic)); err != nil {
		return nil, fmt.Errorf("discard handshake magic: %w", err)
	}
	clientNonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(r, clientNonce); err != nil {
		return nil, fmt.Errorf("read client nonce: %w", err)
	}
	clientProof := make([]byte, sha256.Size)
	if _, err := io.ReadFull(r, clientProof); err != nil {
		return nil, fmt.Errorf("read client auth: %w", err)
	}
	if !hmac.Equal(clientProof, proof(key, clientNonce)) {
		return nil, apierror.ErrUnauthorized("invalid password")
	}
	serverNonce, err := nonce()
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(append([]byte(handshakeOK), serverNonce...)); err != nil {
		return nil, fmt.Errorf("write response: %w", err)
	}
	return WrapConn(conn, DeriveSessionKey(key, serverNonce, clientNonce))
}
