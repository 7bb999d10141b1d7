package handler

import (
	"context"
	"io"
	"log/slog"
	"net"

	"github.com/Alia5/overdrive/internal/server/api"
	"github.com/Alia5/overdrive/output"
)

// OutputStream copies every emitted scancode chunk to the connection until
// the client disconnects or the server stops.
func OutputStream(f *output.Fanout) api.StreamHandlerFunc {
	return func(ctx context.Context, conn net.Conn, _ map[string]string, logger *slog.Logger) error {
		sub := f.Subscribe()
		defer sub.Close()

		// The client never sends after the request; a read returning means
		// it went away.
		gone := make(chan struct{})
		go func() {
			_, _ = io.Copy(io.Discard, conn)
			close(gone)
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-gone:
				return nil
			case chunk, ok := <-sub.C:
				if !ok {
					return nil
				}
				if _, err := conn.Write(chunk); err != nil {
					return err
				}
			}
		}
	}
}
