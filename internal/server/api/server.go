package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"
	"unicode"

	"github.com/Alia5/overdrive/internal/server/api/auth"
	apierror "github.com/Alia5/overdrive/internal/server/api/error"
)

// Server implements the TCP control API of a running engine.
type Server struct {
	addr   string
	ln     net.Listener
	logger *slog.Logger
	router *Router
	config ServerConfig
	key    []byte
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an API server. The password, if any, is stretched here so
// connections do not pay for it.
func New(addr string, config ServerConfig, logger *slog.Logger) (*Server, error) {
	a := &Server{
		addr:   addr,
		logger: logger,
		config: config,
		router: NewRouter(),
	}
	if config.Password != "" {
		key, err := auth.DeriveKey(config.Password)
		if err != nil {
			return nil, fmt.Errorf("derive api key: %w", err)
		}
		a.key = key
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	return a, nil
}

// Router returns the router used by the API server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the listening address once started.
func (a *Server) Addr() string {
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.addr
}

// Start listens on the configured address and serves incoming API commands.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.logger.Info("API listening", "addr", ln.Addr().String(), "auth", a.key != nil)
	go a.serve()
	return nil
}

// Close stops the API server and ends open streams.
func (a *Server) Close() {
	a.cancel()
	if a.ln != nil {
		_ = a.ln.Close()
	}
}

func (a *Server) serve() {
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Info("API accept error", "error", err)
			return
		}
		go a.handleConn(c)
	}
}

func (a *Server) writeError(w io.Writer, err error) {
	problemJSON, _ := json.Marshal(apierror.WrapError(err))
	fmt.Fprintf(w, "%s\n", string(problemJSON))
}

func (a *Server) writeOK(w io.Writer, rest string) {
	if rest == "" {
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "%s\n", rest)
	}
}

func isLoopback(addr net.Addr) bool {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// secure runs the password handshake if the client started one, and refuses
// unauthenticated remote clients when a password is configured.
func (a *Server) secure(conn net.Conn, r *bufio.Reader) (net.Conn, *bufio.Reader, error) {
	if a.key == nil {
		return conn, r, nil
	}
	isAuth, err := auth.IsAuthHandshake(r)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, fmt.Errorf("peek handshake: %w", err)
	}
	if !isAuth {
		if isLoopback(conn.RemoteAddr()) && !a.config.RequireLocalHostAuth {
			return conn, r, nil
		}
		return nil, nil, apierror.ErrUnauthorized("authentication required")
	}
	sc, err := auth.Server(conn, r, a.key)
	if err != nil {
		return nil, nil, err
	}
	return sc, bufio.NewReader(sc), nil
}

func (a *Server) handleConn(raw net.Conn) {
	defer raw.Close()

	connLogger := a.logger.With("remote", raw.RemoteAddr().String())
	if a.config.ConnectionTimeout > 0 {
		_ = raw.SetReadDeadline(time.Now().Add(a.config.ConnectionTimeout))
	}

	conn, r, err := a.secure(raw, bufio.NewReader(raw))
	if err != nil {
		connLogger.Warn("api auth failed", "error", err)
		a.writeError(raw, err)
		return
	}

	// Read until null terminator
	reqData, err := r.ReadString('\x00')
	if err != nil {
		if err == io.EOF {
			connLogger.Error("api incomplete request (no null terminator)")
		} else {
			connLogger.Error("read api data", "error", err)
		}
		return
	}
	reqData = strings.TrimSuffix(reqData, "\x00")
	if reqData == "" {
		connLogger.Error("api empty command")
		a.writeError(conn, apierror.ErrBadRequest("empty request"))
		return
	}

	path, payload := reqData, ""
	if i := strings.IndexFunc(reqData, unicode.IsSpace); i >= 0 {
		path, payload = reqData[:i], reqData[i+1:]
	}
	if path == "" {
		connLogger.Error("api empty path")
		a.writeError(conn, apierror.ErrBadRequest("empty path"))
		return
	}

	path = strings.ToLower(path)
	connLogger.Info("api cmd", "path", path)

	if h, params := a.router.Match(path); h != nil {
		req := &Request{Ctx: a.ctx, Params: params, Payload: payload}
		res := &Response{}
		if err := h(req, res, connLogger); err != nil {
			connLogger.Error("api handler error", "path", path, "error", err)
			a.writeError(conn, err)
			return
		}
		connLogger.Debug("api handler success", "path", path)
		a.writeOK(conn, res.JSON)
		return
	}
	if sh, params := a.router.MatchStream(path); sh != nil {
		_ = raw.SetReadDeadline(time.Time{})
		connLogger.Info("api stream begin", "path", path)
		if err := sh(a.ctx, conn, params, connLogger); err != nil {
			connLogger.Error("api stream handler error", "path", path, "error", err)
		}
		connLogger.Info("api stream end", "path", path)
		return
	}
	connLogger.Error("api unknown path", "path", path)
	a.writeError(conn, apierror.ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
}
