package winding

import "fmt"

// Coil connects a start slot to an end slot. Its position in the slice
// returned by BuildCoils is the coil index used for labels, table rows and
// selection.
type Coil struct {
	Start int
	End   int
	Phase Phase
}

// Direction renders the current direction as "start → end".
func (c Coil) Direction() string {
	return fmt.Sprintf("%d → %d", c.Start, c.End)
}

// BuildCoils builds the ordered coil list for m with a span of span slots,
// assigning phases with AngleBands.
func BuildCoils(m Machine, span int) ([]Coil, error) {
	return BuildCoilsWith(m, span, AngleBands{})
}

// BuildCoilsWith is BuildCoils with an explicit phase assigner.
//
// A single-layer winding has Z/2 coils, each running to the diametrically
// opposite slot. A double-layer winding has one coil per slot spanning span
// slots. Every call returns a fresh slice.
func BuildCoilsWith(m Machine, span int, assign PhaseAssigner) ([]Coil, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if span <= 0 || span > m.Slots {
		return nil, fmt.Errorf("%w: coil span %d outside 1..%d", ErrPitchOutOfRange, span, m.Slots)
	}
	if assign == nil {
		assign = AngleBands{}
	}

	z := m.Slots
	switch m.Layer {
	case SingleLayer:
		half := z / 2
		coils := make([]Coil, 0, half)
		for i := 0; i < half; i++ {
			start := i + 1
			coils = append(coils, Coil{
				Start: start,
				End:   wrapSlot(start+half, z),
				Phase: assign.PhaseOf(start, z, m.Poles),
			})
		}
		return coils, nil
	default:
		coils := make([]Coil, 0, z)
		for s := 1; s <= z; s++ {
			coils = append(coils, Coil{
				Start: s,
				End:   wrapSlot(s+span, z),
				Phase: assign.PhaseOf(s, z, m.Poles),
			})
		}
		return coils, nil
	}
}

// wrapSlot folds a 1-based slot index that may exceed z back into [1, z]:
// ((s - 1) mod z) + 1.
func wrapSlot(s, z int) int {
	r := (s - 1) % z
	if r < 0 {
		r += z
	}
	return r + 1
}
