//go:build windows

package main

import (
	"log/slog"
	"os"

	"github.com/Alia5/overdrive/internal/console"
)

func init() {
	if console.LaunchedFromDesktop() {
		slog.Info("Started from the desktop, running serve")
		os.Args = console.WithDefaultCommand(os.Args, "serve")
	}
}
