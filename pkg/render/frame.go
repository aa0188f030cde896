package render

import "github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"

// NoSelection is the Selected value of a frame without a selected coil.
const NoSelection = -1

// Frame is the immutable state one redraw is computed from.
type Frame struct {
	Machine  winding.Machine
	Coils    []winding.Coil
	Selected int
	Viewport Viewport

	// Assigner colors the slot markers; nil means the canonical angle bands
	Assigner winding.PhaseAssigner
}

// IsSelected reports whether coil i is the selected coil.
func (f Frame) IsSelected(i int) bool {
	return f.Selected >= 0 && f.Selected == i
}

func (f Frame) slotPhase(slot int) winding.Phase {
	if f.Assigner != nil {
		return f.Assigner.PhaseOf(slot, f.Machine.Slots, f.Machine.Poles)
	}
	return winding.PhaseOfSlot(slot, f.Machine.Slots, f.Machine.Poles)
}
