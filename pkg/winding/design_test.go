package winding

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestNewDesignSummaryAndTable(t *testing.T) {
	m := machine(24, 4, 3, SingleLayer, 1)
	m.Connection = Delta

	d, err := NewDesign(m)
	if err != nil {
		t.Fatalf("NewDesign failed: %v", err)
	}

	s := d.Summary()
	if s.Slots != 24 || s.Poles != 4 || s.Phases != 3 || s.K != 1 {
		t.Errorf("unexpected counts in summary: %+v", s)
	}
	if s.Connection != "Triangle (Δ)" {
		t.Errorf("connection label: got %q", s.Connection)
	}
	if s.Winding != "Single-layer" {
		t.Errorf("winding label: got %q", s.Winding)
	}
	if s.Pitch != "Customised" {
		t.Errorf("pitch label: got %q", s.Pitch)
	}
	if s.SlotsPerPole != "2.00" {
		t.Errorf("q label: got %q", s.SlotsPerPole)
	}

	rows := d.Table()
	if len(rows) != 12 {
		t.Fatalf("got %d rows, want 12", len(rows))
	}
	first := rows[0]
	if first.Index != 1 || first.Phase != "A+" || first.Start != 1 || first.End != 13 || first.Direction != "1 → 13" {
		t.Errorf("unexpected first row: %+v", first)
	}
}

func TestNewDesignFullPitchLabels(t *testing.T) {
	d, err := NewDesign(DefaultMachine())
	if err != nil {
		t.Fatalf("NewDesign failed: %v", err)
	}
	s := d.Summary()
	if s.Connection != "Star (Y)" || s.Winding != "Double-layer" || s.Pitch != "Full-pitched" {
		t.Errorf("unexpected labels: %+v", s)
	}
	if s.WindingFactor != "0.9659" {
		t.Errorf("kw label: got %q", s.WindingFactor)
	}
}

func TestNewDesignFailsClosed(t *testing.T) {
	d, err := NewDesign(machine(24, 4, 3, DoubleLayer, 6))
	if !errors.Is(err, ErrPitchOutOfRange) {
		t.Fatalf("got %v, want ErrPitchOutOfRange", err)
	}
	if d != nil {
		t.Errorf("expected nil design on error")
	}
}

func TestHarmonics(t *testing.T) {
	m := machine(24, 4, 3, DoubleLayer, 1)
	fig, err := Calculate(m)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	hs, err := Harmonics(m, 13)
	if err != nil {
		t.Fatalf("Harmonics failed: %v", err)
	}
	if len(hs) != 7 {
		t.Fatalf("got %d orders, want 7", len(hs))
	}
	if hs[0].Order != 1 || !scalar.EqualWithinAbs(hs[0].Kw, fig.Kw, 1e-9) {
		t.Errorf("fundamental: got %+v, want kw=%f", hs[0], fig.Kw)
	}
	for i, h := range hs {
		if h.Order != 2*i+1 {
			t.Errorf("entry %d: order %d", i, h.Order)
		}
		if h.Kw < -1 || h.Kw > 1 {
			t.Errorf("order %d: |kw| > 1 (%f)", h.Order, h.Kw)
		}
	}
	// cos(5·15°) = cos(75°)
	if !scalar.EqualWithinAbs(hs[2].Kp, 0.258819, 1e-6) {
		t.Errorf("kp5: got %f", hs[2].Kp)
	}

	if _, err := Harmonics(m, 0); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("order 0: got %v, want ErrInvalidSpec", err)
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLayer("Single"); err != nil || l != SingleLayer {
		t.Errorf("ParseLayer: got %v, %v", l, err)
	}
	if _, err := ParseLayer("triple"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("ParseLayer(triple): got %v", err)
	}
	if c, err := ParseConnection("triangle"); err != nil || c != Delta {
		t.Errorf("ParseConnection: got %v, %v", c, err)
	}
	p, err := ParsePitch("custom", 2)
	if err != nil || p.K() != 2 {
		t.Errorf("ParsePitch(custom, 2): got %+v, %v", p, err)
	}
	p, err = ParsePitch("full", 2)
	if err != nil || p.K() != 0 {
		t.Errorf("ParsePitch(full, 2): got %+v, %v", p, err)
	}
}
