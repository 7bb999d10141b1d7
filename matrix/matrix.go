// Package matrix describes key positions and the per-key events fed into the
// engine.
package matrix

import "fmt"

const (
	// Rows is the number of scan rows.
	Rows = 8
	// Cols is the number of scan columns.
	Cols = 16
	// Keys is the number of addressable positions.
	Keys = Rows * Cols
)

// Position addresses a single switch in the matrix.
type Position struct {
	Row uint8 `json:"row"`
	Col uint8 `json:"col"`
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col uint8) Position { return Position{Row: row, Col: col} }

// Valid reports whether p lies inside the matrix.
func (p Position) Valid() bool { return p.Row < Rows && p.Col < Cols }

// Index returns the linear key number, row major.
func (p Position) Index() int { return int(p.Row)*Cols + int(p.Col) }

func (p Position) String() string { return fmt.Sprintf("%d,%d", p.Row, p.Col) }

// Record is a key edge as seen by hooks and executors.
//
// TapCount is 1 when a tap-hold key resolved as a tap and 0 for hold
// resolutions and ordinary events.
type Record struct {
	Pos      Position
	Pressed  bool
	TapCount uint8
}

func (r Record) String() string {
	edge := "up"
	if r.Pressed {
		edge = "down"
	}
	if r.TapCount > 0 {
		return fmt.Sprintf("%s %s tap=%d", r.Pos, edge, r.TapCount)
	}
	return fmt.Sprintf("%s %s", r.Pos, edge)
}
