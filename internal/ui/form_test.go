package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/machinefile"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

func TestFormRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		m      winding.Machine
		assign winding.PhaseAssigner
	}{
		{"reference", winding.DefaultMachine(), winding.AngleBands{}},
		{"short pitch delta", winding.Machine{
			Phases: 3, Slots: 36, Poles: 6,
			Layer:      winding.SingleLayer,
			Pitch:      winding.Pitch{Kind: winding.CustomPitch, Offset: 1},
			Connection: winding.Delta,
		}, winding.PoleGroups{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMachineForm(tt.m, tt.assign, nil)
			m, a, err := f.Machine()
			if err != nil {
				t.Fatalf("Machine: %v", err)
			}
			if m != tt.m {
				t.Errorf("got %+v, want %+v", m, tt.m)
			}
			if winding.AssignerName(a) != winding.AssignerName(tt.assign) {
				t.Errorf("got assigner %T, want %T", a, tt.assign)
			}
		})
	}
}

func TestFormRejectsText(t *testing.T) {
	f := newMachineForm(winding.DefaultMachine(), nil, nil)
	f.slots.SetText("")
	if _, _, err := f.Machine(); !errors.Is(err, winding.ErrInvalidSpec) || !strings.Contains(err.Error(), "slots") {
		t.Errorf("got %v, want an ErrInvalidSpec naming slots", err)
	}

	f = newMachineForm(winding.DefaultMachine(), nil, nil)
	f.pitch.Set("custom")
	f.offset.SetText("-")
	if _, _, err := f.Machine(); !errors.Is(err, winding.ErrInvalidSpec) {
		t.Errorf("got %v, want ErrInvalidSpec for the offset", err)
	}
}

func TestFormIgnoresOffsetForFullPitch(t *testing.T) {
	f := newMachineForm(winding.DefaultMachine(), nil, nil)
	f.offset.SetText("junk")
	m, _, err := f.Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if m.Pitch.K() != 0 {
		t.Errorf("got k=%d", m.Pitch.K())
	}
}

func TestChoice(t *testing.T) {
	var changed []string
	c := newChoice("Filter", []string{"ALL", "A", "B"}, nil, func(v string) { changed = append(changed, v) })
	if c.Value() != "ALL" {
		t.Fatalf("got %q, want the first value", c.Value())
	}
	if !c.Set("b") || c.Value() != "B" {
		t.Errorf("Set(b) did not select B")
	}
	if c.Set("D") {
		t.Errorf("Set(D) should fail")
	}
	if len(changed) != 0 {
		t.Errorf("Set must not call onChange, got %v", changed)
	}

	c.pick(1)
	c.pick(1)
	if len(changed) != 1 || changed[0] != "A" {
		t.Errorf("got changes %v, want [A]", changed)
	}
}

func TestReadMachines(t *testing.T) {
	input := `machine "small" { slots = 12; poles = 2 }
machine "big" { slots = 48; poles = 8; layer = single }`
	entries, err := readMachines("test.wnd", strings.NewReader(input))
	if err != nil {
		t.Fatalf("readMachines: %v", err)
	}
	if len(entries) != 2 || entries[1].Machine.Layer != winding.SingleLayer {
		t.Errorf("got %+v", entries)
	}

	if _, err := readMachines("empty.wnd", strings.NewReader("# none\n")); !errors.Is(err, machinefile.ErrInvalidField) {
		t.Errorf("got %v, want ErrInvalidField", err)
	}
	if _, err := readMachines("bad.wnd", strings.NewReader("machine {")); err == nil {
		t.Errorf("expected a parse error")
	}
}
