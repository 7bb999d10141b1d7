package apiclient

import (
	"context"
	"fmt"
	"net"
	"time"
)

// OutputStream receives the raw set-2 bytes the server emits.
type OutputStream struct {
	conn net.Conn
}

// OpenOutput subscribes to the server's scancode output.
func (c *Client) OpenOutput(ctx context.Context) (*OutputStream, error) {
	if c.transport.mock != nil {
		return nil, fmt.Errorf("stream connections not supported with mock transport")
	}
	conn, err := c.transport.dial(ctx)
	if err != nil {
		return nil, err
	}
	// Streams are long lived.
	_ = conn.SetDeadline(time.Time{})
	if _, err := conn.Write([]byte("output\x00")); err != nil {
		conn.Close()
		return nil, fmt.Errorf("write stream path: %w", err)
	}
	return &OutputStream{conn: conn}, nil
}

// Read reads emitted bytes.
func (s *OutputStream) Read(p []byte) (int, error) { return s.conn.Read(p) }

// Close ends the subscription.
func (s *OutputStream) Close() error { return s.conn.Close() }
