package winding

import "fmt"

// Design is a complete, consistent calculation result: the machine it was
// computed for, its figures and its coils.
type Design struct {
	Machine Machine
	Figures Figures
	Coils   []Coil
}

// NewDesign calculates the figures for m and builds its coils using the
// canonical phase assignment.
func NewDesign(m Machine) (*Design, error) {
	return NewDesignWith(m, AngleBands{})
}

// NewDesignWith is NewDesign with an explicit phase assigner. Nothing is
// returned unless both the figures and the coils are valid.
func NewDesignWith(m Machine, assign PhaseAssigner) (*Design, error) {
	fig, err := Calculate(m)
	if err != nil {
		return nil, err
	}
	coils, err := BuildCoilsWith(m, fig.Span(), assign)
	if err != nil {
		return nil, err
	}
	return &Design{Machine: m, Figures: fig, Coils: coils}, nil
}

// Formatted is the display form of the figures: q, τ and the factors as
// fixed decimals, the span as an integer.
type Formatted struct {
	Q   string
	Tau string
	Y   string
	Kp  string
	Kd  string
	Kw  string
}

// Format renders f the way the results panel shows it.
func (f Figures) Format() Formatted {
	return Formatted{
		Q:   fmt.Sprintf("%.2f", f.Q),
		Tau: fmt.Sprintf("%.2f", f.Tau),
		Y:   fmt.Sprintf("%d", f.Span()),
		Kp:  fmt.Sprintf("%.4f", f.Kp),
		Kd:  fmt.Sprintf("%.4f", f.Kd),
		Kw:  fmt.Sprintf("%.4f", f.Kw),
	}
}

// Summary is the human-readable machine summary card.
type Summary struct {
	Slots         int
	Poles         int
	Phases        int
	K             int
	SlotsPerPole  string
	WindingFactor string
	Connection    string
	Winding       string
	Pitch         string
}

// Summary describes d for display.
func (d *Design) Summary() Summary {
	f := d.Figures.Format()
	return Summary{
		Slots:         d.Machine.Slots,
		Poles:         d.Machine.Poles,
		Phases:        d.Machine.Phases,
		K:             d.Figures.K,
		SlotsPerPole:  f.Q,
		WindingFactor: f.Kw,
		Connection:    d.Machine.Connection.Label(),
		Winding:       d.Machine.Layer.Label(),
		Pitch:         d.Machine.Pitch.Label(),
	}
}

// TableRow is one row of the coil table.
type TableRow struct {
	Index     int // 1-based
	Phase     string
	Start     int
	End       int
	Direction string
}

// Table returns one row per coil in coil order.
func (d *Design) Table() []TableRow {
	rows := make([]TableRow, len(d.Coils))
	for i, c := range d.Coils {
		rows[i] = TableRow{
			Index:     i + 1,
			Phase:     c.Phase.String(),
			Start:     c.Start,
			End:       c.End,
			Direction: c.Direction(),
		}
	}
	return rows
}
