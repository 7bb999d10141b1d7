package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Alia5/overdrive"
)

// StepKind is one simulate script instruction.
type StepKind int

const (
	StepKey StepKind = iota
	StepTap
	StepSleep
	StepEnable
	StepDisable
	StepSuspend
	StepResume
	StepLayer
	StepStatus
)

// Step is a parsed script line.
//
//	d <row> <col> [delay ms]   press
//	u <row> <col> [delay ms]   release
//	t <row> <col> [delay ms]   press and release
//	sleep <ms>
//	layer <n> on|off|toggle
//	enable | disable | suspend | resume | status
type Step struct {
	Kind    StepKind
	Row     uint8
	Col     uint8
	Pressed bool
	Delay   time.Duration
	Layer   uint8
	Op      overdrive.LayerOp
}

// ParseStep parses one line. ok is false for blank lines and # comments.
func ParseStep(line string) (s Step, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	f := strings.Fields(strings.ToLower(line))
	if len(f) == 0 {
		return Step{}, false, nil
	}
	switch f[0] {
	case "d", "down", "u", "up", "t", "tap":
		if len(f) < 3 || len(f) > 4 {
			return Step{}, false, fmt.Errorf("%s: want <row> <col> [delay]", f[0])
		}
		row, err := parseUint8(f[1])
		if err != nil {
			return Step{}, false, fmt.Errorf("row: %w", err)
		}
		col, err := parseUint8(f[2])
		if err != nil {
			return Step{}, false, fmt.Errorf("col: %w", err)
		}
		s = Step{Kind: StepKey, Row: row, Col: col, Pressed: f[0][0] == 'd'}
		if f[0][0] == 't' {
			s.Kind = StepTap
		}
		if len(f) == 4 {
			if s.Delay, err = parseMillis(f[3]); err != nil {
				return Step{}, false, err
			}
		}
		return s, true, nil
	case "sleep":
		if len(f) != 2 {
			return Step{}, false, fmt.Errorf("sleep: want <ms>")
		}
		d, err := parseMillis(f[1])
		if err != nil {
			return Step{}, false, err
		}
		return Step{Kind: StepSleep, Delay: d}, true, nil
	case "layer":
		if len(f) != 3 {
			return Step{}, false, fmt.Errorf("layer: want <n> on|off|toggle")
		}
		l, err := parseUint8(f[1])
		if err != nil {
			return Step{}, false, fmt.Errorf("layer: %w", err)
		}
		return Step{Kind: StepLayer, Layer: l, Op: overdrive.LayerOp(f[2])}, true, nil
	}
	if len(f) != 1 {
		return Step{}, false, fmt.Errorf("%s takes no arguments", f[0])
	}
	switch f[0] {
	case "enable":
		return Step{Kind: StepEnable}, true, nil
	case "disable":
		return Step{Kind: StepDisable}, true, nil
	case "suspend":
		return Step{Kind: StepSuspend}, true, nil
	case "resume":
		return Step{Kind: StepResume}, true, nil
	case "status":
		return Step{Kind: StepStatus}, true, nil
	}
	return Step{}, false, fmt.Errorf("unknown command %q", f[0])
}

// ParseScript reads a whole script.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		s, ok, err := ParseStep(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if ok {
			steps = append(steps, s)
		}
	}
	return steps, sc.Err()
}

func parseUint8(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return uint8(n), nil
}

func parseMillis(s string) (time.Duration, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q", s)
	}
	return time.Duration(n) * time.Millisecond, nil
}

// Apply runs one step against e. Status lines go to w.
func (s Step) Apply(e *overdrive.Engine, w io.Writer, sleep func(time.Duration)) error {
	switch s.Kind {
	case StepKey:
		e.OnMatrixEvent(s.Row, s.Col, s.Pressed)
	case StepTap:
		e.OnMatrixEvent(s.Row, s.Col, true)
		e.OnMatrixEvent(s.Row, s.Col, false)
	case StepSleep:
	case StepEnable:
		e.SetEnabled(true)
	case StepDisable:
		e.SetEnabled(false)
	case StepSuspend:
		e.Suspend()
	case StepResume:
		e.Resume()
	case StepLayer:
		if err := e.EditLayer(s.Layer, s.Op); err != nil {
			return err
		}
	case StepStatus:
		st := e.Status()
		fmt.Fprintf(w, "enabled=%t suspended=%t layers=%s pending=%d\n", st.Enabled, st.Suspended, st.Effective, st.Pending)
	}
	if s.Delay > 0 {
		sleep(s.Delay)
	}
	return nil
}
