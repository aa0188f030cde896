package render

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// RowPolicy chooses the height of each coil's top segment in the linear
// view. Rows stack upward from bottom so overlapping coils stay apart.
type RowPolicy interface {
	RowTop(index int, c winding.Coil, bottom float64) float64
}

// PhaseRows gives every phase group its own row: A lowest, then B, then C.
type PhaseRows struct {
	Gap float64
}

func (r PhaseRows) RowTop(_ int, c winding.Coil, bottom float64) float64 {
	gap := r.Gap
	if gap <= 0 {
		gap = 90
	}
	row := 0
	switch c.Phase.Group() {
	case 'B':
		row = 1
	case 'C':
		row = 2
	}
	return bottom - float64(row+1)*gap
}

// SequentialRows stacks coils by index, wrapping after MaxRows rows.
type SequentialRows struct {
	Gap     float64
	MaxRows int
}

func (r SequentialRows) RowTop(index int, _ winding.Coil, bottom float64) float64 {
	gap := r.Gap
	if gap <= 0 {
		gap = 24
	}
	rows := r.MaxRows
	if rows <= 0 {
		rows = 8
	}
	return bottom - float64(index%rows+1)*gap
}

// ParseRowPolicy accepts "phase" or "sequential".
func ParseRowPolicy(s string) (RowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "phase":
		return PhaseRows{Gap: 90}, nil
	case "sequential", "index":
		return SequentialRows{Gap: 24, MaxRows: 8}, nil
	}
	return nil, fmt.Errorf("render: unknown row policy %q", s)
}
