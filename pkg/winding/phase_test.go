package winding

import (
	"errors"
	"testing"
)

func TestAngleBandsReferenceMachine(t *testing.T) {
	want := []Phase{
		APlus, APlus, BMinus, BMinus, CPlus, CPlus,
		AMinus, AMinus, BPlus, BPlus, CMinus, CMinus,
	}
	for i, w := range want {
		slot := i + 1
		if got := PhaseOfSlot(slot, 24, 4); got != w {
			t.Errorf("slot %d: got %s, want %s", slot, got, w)
		}
		// second pole pair repeats the first
		if got := PhaseOfSlot(slot+12, 24, 4); got != w {
			t.Errorf("slot %d: got %s, want %s", slot+12, got, w)
		}
	}
}

func TestAngleBandsCyclesThroughAllLabels(t *testing.T) {
	machines := []struct{ slots, poles int }{
		{24, 4}, {36, 4}, {48, 8}, {18, 2}, {12, 4}, {72, 6},
	}
	for _, m := range machines {
		span := 2 * m.slots / m.poles // one pole pair
		seen := make(map[Phase]int)
		prev := PhaseOfSlot(1, m.slots, m.poles)
		for s := 1; s <= span; s++ {
			p := PhaseOfSlot(s, m.slots, m.poles)
			seen[p]++
			if p != prev && p != (prev+1)%6 {
				t.Errorf("Z=%d poles=%d: slot %d jumps from %s to %s", m.slots, m.poles, s, prev, p)
			}
			prev = p
		}
		if len(seen) != 6 {
			t.Errorf("Z=%d poles=%d: saw %d labels in one pole pair, want 6", m.slots, m.poles, len(seen))
		}
		for p, n := range seen {
			if n != span/6 {
				t.Errorf("Z=%d poles=%d: label %s used %d times, want %d", m.slots, m.poles, p, n, span/6)
			}
		}
	}
}

func TestAngleBandsExactBoundaries(t *testing.T) {
	// α = 360/42 has no exact binary form; slot 8 sits exactly on the 60° edge.
	if got := PhaseOfSlot(7, 42, 2); got != APlus {
		t.Errorf("slot 7: got %s, want A+", got)
	}
	if got := PhaseOfSlot(8, 42, 2); got != BMinus {
		t.Errorf("slot 8: got %s, want B-", got)
	}
}

func TestAngleBandsIsTotal(t *testing.T) {
	for slot := 1; slot <= 500; slot++ {
		p := PhaseOfSlot(slot, 24, 4)
		if p < APlus || p > CMinus {
			t.Fatalf("slot %d: label %d out of range", slot, p)
		}
		if again := PhaseOfSlot(slot, 24, 4); again != p {
			t.Fatalf("slot %d: not deterministic (%s vs %s)", slot, p, again)
		}
	}
}

func TestPoleGroupsAlternative(t *testing.T) {
	want := []Phase{APlus, APlus, BMinus, BMinus, CPlus, CPlus, APlus, APlus}
	var assign PhaseAssigner = PoleGroups{}
	for i, w := range want {
		if got := assign.PhaseOf(i+1, 24, 4); got != w {
			t.Errorf("slot %d: got %s, want %s", i+1, got, w)
		}
	}
	// the two methods agree on the first pole and part ways on the second
	if assign.PhaseOf(7, 24, 4) == PhaseOfSlot(7, 24, 4) {
		t.Errorf("expected the assigners to disagree on slot 7")
	}
}

func TestParsePhase(t *testing.T) {
	for _, p := range Phases() {
		got, err := ParsePhase(p.String())
		if err != nil {
			t.Fatalf("ParsePhase(%q): %v", p.String(), err)
		}
		if got != p {
			t.Errorf("ParsePhase(%q) = %s", p.String(), got)
		}
	}
	if _, err := ParsePhase("D+"); err == nil {
		t.Errorf("expected error for unknown label")
	}
	if BMinus.Group() != 'B' || BMinus.Positive() || !CPlus.Positive() {
		t.Errorf("unexpected group/sense helpers")
	}
}

func TestParseAssigner(t *testing.T) {
	for _, name := range []string{"angle", "groups"} {
		a, err := ParseAssigner(name)
		if err != nil {
			t.Fatalf("ParseAssigner(%q): %v", name, err)
		}
		if got := AssignerName(a); got != name {
			t.Errorf("AssignerName: got %q, want %q", got, name)
		}
	}
	if _, err := ParseAssigner("random"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("got %v, want ErrInvalidSpec", err)
	}
}
