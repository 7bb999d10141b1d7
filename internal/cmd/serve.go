package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Alia5/overdrive/internal/configpaths"
	"github.com/Alia5/overdrive/internal/log"
	"github.com/Alia5/overdrive/internal/server/api"
	"github.com/Alia5/overdrive/internal/server/api/auth"
	"github.com/Alia5/overdrive/internal/server/api/handler"
	"github.com/Alia5/overdrive/output"
	"github.com/Alia5/overdrive/store"
)

const (
	keyFileName   = "api.key.txt"
	stateFileName = "state.json"
)

// Version is reported by the ping route.
var Version = "dev"

type Serve struct {
	Engine            EngineConfig     `embed:""`
	ApiServerConfig   api.ServerConfig `embed:"" prefix:"api."`
	State             string           `help:"FN lock state file (defaults to the config directory)" env:"OVERDRIVE_STATE"`
	Output            string           `help:"Also write scancode bytes to this file or device" env:"OVERDRIVE_OUTPUT"`
	ConnectionTimeout time.Duration    `help:"API request read timeout" default:"30s" env:"OVERDRIVE_CONNECTION_TIMEOUT"`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

// StartServer runs until ctx is done.
func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	s.ApiServerConfig.ConnectionTimeout = s.ConnectionTimeout
	if s.ApiServerConfig.Addr == "" {
		return fmt.Errorf("API server address must be set (default localhost:3243)")
	}
	if err := s.loadPassword(logger); err != nil {
		return err
	}

	st, err := s.openStore()
	if err != nil {
		return err
	}

	fan := output.NewFanout(logger, 0)
	var w io.Writer = fan
	if s.Output != "" {
		f, err := os.OpenFile(s.Output, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer f.Close()
		w = io.MultiWriter(fan, f)
	}
	sink := output.NewSet2Writer(w, logger, rawLogger)

	e, err := s.Engine.NewEngine(sink, st, logger)
	if err != nil {
		return err
	}
	// Boot counts as a resume so a saved FN lock comes back.
	e.Resume()

	logger.Info("Starting overdrive", "keymap", s.Engine.Keymap, "state", st.Path())

	apiSrv, err := api.New(s.ApiServerConfig.Addr, s.ApiServerConfig, logger)
	if err != nil {
		return err
	}
	handler.RegisterAll(apiSrv.Router(), e, fan, Version)

	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		return err
	}
	defer apiSrv.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- e.Run(ctx) }()

	select {
	case <-ctx.Done():
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Serve) openStore() (*store.File, error) {
	path := s.State
	if path == "" {
		p, err := configpaths.DefaultFile(stateFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve state file path: %w", err)
		}
		path = p
	}
	return store.OpenFile(path)
}

// loadPassword reads the API password from the key file, creating one on
// first start.
func (s *Serve) loadPassword(logger *slog.Logger) error {
	keyFilePath, err := configpaths.DefaultFile(keyFileName)
	if err != nil {
		return fmt.Errorf("failed to resolve key file path: %w", err)
	}
	if pwd, err := os.ReadFile(keyFilePath); err == nil {
		s.ApiServerConfig.Password = strings.TrimSpace(string(pwd))
		return nil
	}
	newPwd, err := auth.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate new API password: %w", err)
	}
	if err := configpaths.EnsureDir(keyFilePath); err != nil {
		return fmt.Errorf("failed to create config dir for key file: %w", err)
	}
	if err := os.WriteFile(keyFilePath, []byte(newPwd), 0o600); err != nil {
		return fmt.Errorf("failed to write new API password to file: %w", err)
	}
	s.ApiServerConfig.Password = newPwd
	logger.Info("Generated API server password", "path", keyFilePath)
	logger.Info("You can change this password at any time by editing the file")
	return nil
}

// ReadPassword returns the stored API password, or "" when there is none.
func ReadPassword() string {
	keyFilePath, err := configpaths.DefaultFile(keyFileName)
	if err != nil {
		return ""
	}
	pwd, err := os.ReadFile(keyFilePath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(pwd))
}
