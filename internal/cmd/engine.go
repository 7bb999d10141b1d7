package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Alia5/overdrive"
	"github.com/Alia5/overdrive/board/framework"
	"github.com/Alia5/overdrive/keymap"
	"github.com/Alia5/overdrive/output"
	"github.com/Alia5/overdrive/store"
	"github.com/Alia5/overdrive/taphold"
)

// EngineConfig holds the engine flags shared by serve and simulate.
type EngineConfig struct {
	Keymap   string        `help:"Built-in keymap (framework-iso, framework-ansi) or path to a YAML keymap" default:"framework-iso" env:"OVERDRIVE_KEYMAP"`
	Hold     time.Duration `help:"Tap-hold decision time" default:"200ms" env:"OVERDRIVE_HOLD"`
	Queue    int           `help:"Maximum pending tap-hold presses" default:"16" env:"OVERDRIVE_QUEUE"`
	Disabled bool          `help:"Start with the engine disabled (events pass through)" default:"false" env:"OVERDRIVE_DISABLED"`
}

// LoadKeymap returns a built-in keymap by name or loads a YAML file.
func LoadKeymap(name string) (*keymap.Keymap, error) {
	if build, ok := framework.Keymaps[name]; ok {
		return build(), nil
	}
	km, err := keymap.LoadFile(name, framework.Names)
	if err != nil {
		return nil, fmt.Errorf("keymap %q: %w", name, err)
	}
	return km, nil
}

// NewEngine builds a Framework engine emitting to sink, with FN lock state in
// st.
func (c EngineConfig) NewEngine(sink output.Sink, st store.Store, logger *slog.Logger, extra ...overdrive.Option) (*overdrive.Engine, error) {
	km, err := LoadKeymap(c.Keymap)
	if err != nil {
		return nil, err
	}
	hold, queue := c.Hold, c.Queue
	if hold <= 0 {
		hold = taphold.DefaultHold
	}
	if queue <= 0 {
		queue = taphold.DefaultCapacity
	}
	board := framework.New(st, nil, nil, logger)
	opts := []overdrive.Option{
		overdrive.WithLogger(logger),
		overdrive.WithHold(hold),
		overdrive.WithQueueCapacity(queue),
		overdrive.WithEnabled(!c.Disabled),
	}
	opts = append(opts, board.Options(sink)...)
	opts = append(opts, extra...)
	e := overdrive.New(km, sink, opts...)
	logger.Debug("engine ready", "keymap", c.Keymap, "layers", km.Len(), "hold", hold, "queue", queue)
	return e, nil
}
