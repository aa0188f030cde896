package machinefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

const reference = `
# 24 slot reference stator
machine "reference" {
	slots = 24
	poles = 4
	phases = 3
	layer = double
	pitch = custom 1
	connection = delta
}

// minimal block, everything else defaulted
machine "small" { slots = 12; poles = 2 }
`

func parse(t *testing.T, input string) *File {
	t.Helper()
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	f, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	return f
}

func TestParseMachines(t *testing.T) {
	f := parse(t, reference)
	if len(f.Machines) != 2 {
		t.Fatalf("Expected 2 machines, got %d", len(f.Machines))
	}
	ref := f.Machine("reference")
	if ref == nil {
		t.Fatal("machine \"reference\" not found")
	}
	if len(ref.Fields) != 6 {
		t.Errorf("Expected 6 fields, got %d", len(ref.Fields))
	}
	if ref.Pos.Line != 3 {
		t.Errorf("Expected machine on line 3, got %d", ref.Pos.Line)
	}
	pitch := ref.Fields[4]
	if pitch.Key != "pitch" || pitch.Value.String() != "custom 1" {
		t.Errorf("Unexpected pitch field %s = %s", pitch.Key, pitch.Value)
	}
	if f.Machine("missing") != nil {
		t.Errorf("Found a machine that was never declared")
	}
}

func TestEntries(t *testing.T) {
	entries, err := parse(t, reference).Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}

	want := winding.Machine{
		Phases:     3,
		Slots:      24,
		Poles:      4,
		Layer:      winding.DoubleLayer,
		Pitch:      winding.Pitch{Kind: winding.CustomPitch, Offset: 1},
		Connection: winding.Delta,
	}
	if entries[0].Machine != want {
		t.Errorf("got %+v, want %+v", entries[0].Machine, want)
	}

	small := entries[1].Machine
	if small.Phases != 3 || small.Layer != winding.DoubleLayer || small.Pitch.Kind != winding.FullPitch || small.Connection != winding.Star {
		t.Errorf("defaults not applied: %+v", small)
	}
	if _, err := winding.NewDesign(small); err != nil {
		t.Errorf("defaulted machine does not validate: %v", err)
	}
}

func TestEntryErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unknown field", `machine "m" { slots = 24 poles = 4 colour = red }`, ErrInvalidField},
		{"duplicate field", `machine "m" { slots = 24 slots = 36 poles = 4 }`, ErrInvalidField},
		{"missing poles", `machine "m" { slots = 24 }`, ErrInvalidField},
		{"word for number", `machine "m" { slots = many poles = 4 }`, ErrInvalidField},
		{"number for word", `machine "m" { slots = 24 poles = 4 layer = 2 }`, ErrInvalidField},
		{"bad layer", `machine "m" { slots = 24 poles = 4 layer = triple }`, winding.ErrInvalidSpec},
		{"custom without offset", `machine "m" { slots = 24 poles = 4 pitch = custom }`, ErrInvalidField},
		{"full with offset", `machine "m" { slots = 24 poles = 4 pitch = full 2 }`, ErrInvalidField},
		{"bad assignment", `machine "m" { slots = 24 poles = 4 assignment = dice }`, winding.ErrInvalidSpec},
		{"duplicate machine", `machine "m" { slots = 24 poles = 4 } machine "m" { slots = 12 poles = 2 }`, ErrInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input).Entries()
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestErrorNamesPosition(t *testing.T) {
	_, err := parse(t, "machine \"m\" {\n  slots = 24\n  poles = 4\n  turns = 9\n}").Entries()
	if err == nil || !strings.Contains(err.Error(), "4:3") {
		t.Errorf("error should point at line 4 column 3, got %v", err)
	}
}

func TestPitchForms(t *testing.T) {
	tests := []struct {
		value string
		want  winding.Pitch
	}{
		{"full", winding.Pitch{Kind: winding.FullPitch}},
		{"custom 2", winding.Pitch{Kind: winding.CustomPitch, Offset: 2}},
		{"1", winding.Pitch{Kind: winding.CustomPitch, Offset: 1}},
		{"short 1", winding.Pitch{Kind: winding.CustomPitch, Offset: 1}},
	}
	for _, tt := range tests {
		e, err := parse(t, `machine "m" { slots = 24 poles = 4 pitch = `+tt.value+` }`).Machines[0].Entry()
		if err != nil {
			t.Fatalf("pitch = %s: %v", tt.value, err)
		}
		if e.Machine.Pitch != tt.want {
			t.Errorf("pitch = %s: got %+v, want %+v", tt.value, e.Machine.Pitch, tt.want)
		}
	}
}

func TestLegacyAssignment(t *testing.T) {
	e, err := parse(t, `machine "m" { slots = 24 poles = 4 assignment = groups }`).Machines[0].Entry()
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if _, ok := e.Assigner.(winding.PoleGroups); !ok {
		t.Errorf("got %T, want PoleGroups", e.Assigner)
	}
}

func TestSyntaxError(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	if _, err := parser.ParseString(`machine m { slots = 24 }`); err == nil {
		t.Errorf("expected an error for an unquoted machine name")
	}
	if _, err := parser.ParseString(`machine "m" { slots 24 }`); err == nil {
		t.Errorf("expected an error for a missing '='")
	}
}

func TestLoadAndPick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stators.wnd")
	if err := os.WriteFile(path, []byte(reference), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	first, err := Pick(entries, "")
	if err != nil || first.Name != "reference" {
		t.Errorf("Pick(\"\") = %q, %v", first.Name, err)
	}
	small, err := Pick(entries, "small")
	if err != nil || small.Machine.Slots != 12 {
		t.Errorf("Pick(small) = %+v, %v", small, err)
	}
	if _, err := Pick(entries, "large"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("Pick(large): got %v", err)
	}

	empty := filepath.Join(t.TempDir(), "empty.wnd")
	if err := os.WriteFile(empty, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(empty); !errors.Is(err, ErrInvalidField) {
		t.Errorf("Load(empty): got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.wnd")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
