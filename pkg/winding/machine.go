package winding

import (
	"fmt"
	"strings"
)

// Layer selects how many coil sides share a slot.
type Layer int

const (
	SingleLayer Layer = iota
	DoubleLayer
)

func (l Layer) String() string {
	switch l {
	case SingleLayer:
		return "single"
	case DoubleLayer:
		return "double"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

// Label returns the human-readable winding type used in summaries.
func (l Layer) Label() string {
	if l == SingleLayer {
		return "Single-layer"
	}
	return "Double-layer"
}

// ParseLayer accepts "single" or "double" in any case.
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-layer":
		return SingleLayer, nil
	case "double", "double-layer":
		return DoubleLayer, nil
	}
	return 0, fmt.Errorf("%w: unknown layer type %q", ErrInvalidSpec, s)
}

// PitchKind distinguishes full-pitched windings from chorded ones.
type PitchKind int

const (
	FullPitch PitchKind = iota
	CustomPitch
)

func (k PitchKind) String() string {
	if k == FullPitch {
		return "full"
	}
	return "custom"
}

// Pitch is the coil pitch policy. Offset is the number of slots the coil
// span is shortened by and is only meaningful for CustomPitch.
type Pitch struct {
	Kind   PitchKind
	Offset int
}

// K returns the effective pitch offset in slots.
func (p Pitch) K() int {
	if p.Kind == FullPitch {
		return 0
	}
	return p.Offset
}

// Label returns the pitch type label used in summaries.
func (p Pitch) Label() string {
	if p.Kind == FullPitch {
		return "Full-pitched"
	}
	return "Customised"
}

// ParsePitch accepts "full" or "custom"; offset is only kept for custom.
func ParsePitch(kind string, offset int) (Pitch, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "full", "":
		return Pitch{Kind: FullPitch}, nil
	case "custom", "short", "chorded":
		return Pitch{Kind: CustomPitch, Offset: offset}, nil
	}
	return Pitch{}, fmt.Errorf("%w: unknown pitch type %q", ErrInvalidSpec, kind)
}

// Connection is the phase connection. It only affects display.
type Connection int

const (
	Star Connection = iota
	Delta
)

func (c Connection) String() string {
	if c == Star {
		return "star"
	}
	return "delta"
}

// Label returns the connection label used in summaries.
func (c Connection) Label() string {
	if c == Star {
		return "Star (Y)"
	}
	return "Triangle (Δ)"
}

// ParseConnection accepts "star"/"y" and "delta"/"triangle".
func ParseConnection(s string) (Connection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "star", "y", "wye":
		return Star, nil
	case "delta", "triangle", "d":
		return Delta, nil
	}
	return 0, fmt.Errorf("%w: unknown connection %q", ErrInvalidSpec, s)
}

// Machine is the immutable description of a stator to wind.
type Machine struct {
	Phases     int
	Slots      int
	Poles      int
	Layer      Layer
	Pitch      Pitch
	Connection Connection
}

// DefaultMachine returns the 24-slot, 4-pole, 3-phase double-layer machine
// used as the starting point of the tools.
func DefaultMachine() Machine {
	return Machine{
		Phases: 3,
		Slots:  24,
		Poles:  4,
		Layer:  DoubleLayer,
		Pitch:  Pitch{Kind: FullPitch},
	}
}

// PolePairs returns p = poles/2.
func (m Machine) PolePairs() int {
	return m.Poles / 2
}

// Validate checks the machine against the integral-slot model. Structural
// problems are reported as ErrInvalidSpec; a pitch offset that consumes the
// whole pole pitch is reported as ErrPitchOutOfRange.
func (m Machine) Validate() error {
	if m.Phases < 2 {
		return fmt.Errorf("%w: phase count must be at least 2, got %d", ErrInvalidSpec, m.Phases)
	}
	if m.Slots <= 0 {
		return fmt.Errorf("%w: slot count must be positive, got %d", ErrInvalidSpec, m.Slots)
	}
	if m.Poles <= 0 {
		return fmt.Errorf("%w: pole count must be positive, got %d", ErrInvalidSpec, m.Poles)
	}
	if m.Poles%2 != 0 {
		return fmt.Errorf("%w: pole count must be even, got %d", ErrInvalidSpec, m.Poles)
	}
	if m.Layer != SingleLayer && m.Layer != DoubleLayer {
		return fmt.Errorf("%w: unknown layer %v", ErrInvalidSpec, m.Layer)
	}
	if m.Slots%(m.Poles*m.Phases) != 0 {
		return fmt.Errorf("%w: %d slots do not divide into %d poles x %d phases (fractional-slot windings are not supported)",
			ErrInvalidSpec, m.Slots, m.Poles, m.Phases)
	}
	k := m.Pitch.K()
	if k < 0 {
		return fmt.Errorf("%w: pitch offset must not be negative, got %d", ErrInvalidSpec, k)
	}
	if tau := m.Slots / m.Poles; k >= tau {
		return fmt.Errorf("%w: offset k=%d leaves no span with pole pitch %d", ErrPitchOutOfRange, k, tau)
	}
	return nil
}
