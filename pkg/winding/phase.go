package winding

import (
	"fmt"
	"math"
	"strings"
)

// Phase is one of the six phase-belt labels, declared in the order the
// belts follow each other around one pole pair.
type Phase int

const (
	APlus Phase = iota
	BMinus
	CPlus
	AMinus
	BPlus
	CMinus
)

var phaseNames = [...]string{"A+", "B-", "C+", "A-", "B+", "C-"}

// Phases returns the six labels in cycle order.
func Phases() []Phase {
	return []Phase{APlus, BMinus, CPlus, AMinus, BPlus, CMinus}
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Group returns the phase letter ('A', 'B' or 'C').
func (p Phase) Group() byte {
	return p.String()[0]
}

// Positive reports whether the belt carries the positive sense.
func (p Phase) Positive() bool {
	return p == APlus || p == BPlus || p == CPlus
}

// ParsePhase parses labels such as "A+" or "c-".
func ParsePhase(s string) (Phase, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range phaseNames {
		if name == up {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("winding: unknown phase label %q", s)
}

// PhaseAssigner maps a 1-based slot index to a phase label. Implementations
// must be total over slot >= 1 and deterministic.
type PhaseAssigner interface {
	PhaseOf(slot, slots, poles int) Phase
}

// AngleBands is the canonical assignment: the slot's electrical angle
// ((slot-1)·α mod 360, α = 180·poles/Z) falls into one of six 60° belts.
//
// The angle is kept scaled by Z so every comparison is exact integer
// arithmetic and band boundaries never drift.
type AngleBands struct{}

func (AngleBands) PhaseOf(slot, slots, poles int) Phase {
	if slots <= 0 {
		return APlus
	}
	full := 360 * slots
	a := ((slot - 1) * 180 * poles) % full
	if a < 0 {
		a += full
	}
	return Phase(a / (60 * slots))
}

// PoleGroups is the alternative group-index assignment: the slot position
// within one pole pitch is divided into blocks of q slots, with the phase
// count fixed at three. It only ever yields the A+, B-, C+ labels of the
// first pole and disagrees with AngleBands on every other pole.
type PoleGroups struct{}

func (PoleGroups) PhaseOf(slot, slots, poles int) Phase {
	if slots <= 0 || poles <= 0 {
		return APlus
	}
	tau := slots / poles
	q := float64(slots) / float64(poles*3)
	if tau == 0 || q == 0 {
		return APlus
	}
	inPole := (slot - 1) % tau
	if inPole < 0 {
		inPole += tau
	}
	group := int(math.Floor(float64(inPole) / q))
	return Phase(group % len(phaseNames))
}

// PhaseOfSlot assigns a phase with the canonical AngleBands method.
func PhaseOfSlot(slot, slots, poles int) Phase {
	return AngleBands{}.PhaseOf(slot, slots, poles)
}

// ParseAssigner accepts "angle" for AngleBands and "groups" for PoleGroups.
func ParseAssigner(s string) (PhaseAssigner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "angle", "bands":
		return AngleBands{}, nil
	case "groups", "pole-groups", "legacy":
		return PoleGroups{}, nil
	}
	return nil, fmt.Errorf("%w: unknown phase assignment %q", ErrInvalidSpec, s)
}

// AssignerName is the inverse of ParseAssigner.
func AssignerName(a PhaseAssigner) string {
	if _, ok := a.(PoleGroups); ok {
		return "groups"
	}
	return "angle"
}
