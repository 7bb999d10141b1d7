package log

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.in))
		})
	}
}

func TestSetupSplitsStreams(t *testing.T) {
	var out, errs bytes.Buffer
	logger, closers, err := setup(&out, &errs, "debug", "")
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("keyscan", "row", 1)
	logger.Error("boom")
	assert.Contains(t, out.String(), "keyscan")
	assert.NotContains(t, out.String(), "boom")
	assert.Contains(t, errs.String(), "boom")
	assert.NotContains(t, errs.String(), "keyscan")
}

func TestSetupFile(t *testing.T) {
	var out, errs bytes.Buffer
	path := filepath.Join(t.TempDir(), "overdrive.log")
	logger, closers, err := setup(&out, &errs, "info", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	logger.Info("hello")
	logger.Debug("hidden")
	for _, c := range closers {
		_ = c.Close()
	}
	assert.Contains(t, errs.String(), "hello")
	assert.NotContains(t, errs.String(), "hidden")
	assert.Empty(t, out.String())
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	r := &rawLogger{w: &buf, now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }}
	r.Log(false, []byte{0xE0, 0xF0, 0x70})
	r.Log(true, []byte("ping"))
	r.Log(false, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024/01/02 03:04:05.000 KB->HOST chunk: 3 bytes, hex: E0 F0 70", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024/01/02 03:04:05.000 CTL->KB chunk: 4 bytes"))

	NewRaw(nil).Log(true, []byte{1})
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
