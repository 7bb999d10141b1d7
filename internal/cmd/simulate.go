package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/internal/log"
	"github.com/Alia5/overdrive/output"
	"github.com/Alia5/overdrive/store"
	"golang.org/x/term"
)

type Simulate struct {
	Engine EngineConfig `embed:""`
	Script string       `arg:"" optional:"" type:"existingfile" help:"Script file (reads stdin when omitted)"`
	Raw    bool         `help:"Print raw set-2 bytes instead of one line per key" default:"false"`
}

// Run is called by Kong when the simulate command is executed.
func (s *Simulate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	in := io.Reader(os.Stdin)
	interactive := false
	if s.Script != "" {
		f, err := os.Open(s.Script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	} else {
		interactive = term.IsTerminal(int(os.Stdin.Fd()))
	}
	return s.Exec(context.Background(), in, os.Stdout, interactive, logger, rawLogger)
}

// Exec runs the script read from in and writes emitted keys to out. Interactive
// mode prompts for each line and reports errors without stopping.
func (s *Simulate) Exec(ctx context.Context, in io.Reader, out io.Writer, interactive bool, logger *slog.Logger, rawLogger log.RawLogger) error {
	var sink output.Sink = output.NewText(out)
	if s.Raw {
		sink = output.NewSet2Writer(out, logger, rawLogger)
	}
	e, err := s.Engine.NewEngine(sink, store.NewMemory(), logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	e.Start(ctx)

	prompt := func() {
		if interactive {
			fmt.Fprint(out, "> ")
		}
	}
	sc := bufio.NewScanner(in)
	prompt()
	for n := 1; sc.Scan(); n++ {
		step, ok, err := ParseStep(sc.Text())
		switch {
		case err != nil && interactive:
			fmt.Fprintf(out, "error: %v\n", err)
		case err != nil:
			return fmt.Errorf("line %d: %w", n, err)
		case ok:
			if err := step.Apply(e, out, time.Sleep); err != nil {
				if !interactive {
					return fmt.Errorf("line %d: %w", n, err)
				}
				fmt.Fprintf(out, "error: %v\n", err)
			}
		}
		prompt()
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return drain(e, s.Engine.Hold)
}

// drain waits for pending tap-hold presses to resolve as holds.
func drain(e *overdrive.Engine, hold time.Duration) error {
	deadline := time.Now().Add(2*hold + 100*time.Millisecond)
	for e.Status().Pending > 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("%d tap-hold presses still pending", e.Status().Pending)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
