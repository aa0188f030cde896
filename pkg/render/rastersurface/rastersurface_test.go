package rastersurface

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRejectsEmptySize(t *testing.T) {
	if _, err := New(0, 10); err == nil {
		t.Errorf("expected an error for a zero width")
	}
}

func TestStrokeCoversLine(t *testing.T) {
	s := newSurface(t, 100, 50)
	s.Stroke(render.NewPath().MoveTo(10, 25).LineTo(90, 25), render.StrokeStyle{Color: black, Width: 4})

	img := s.Image()
	if got := img.RGBAAt(50, 25); got == white {
		t.Errorf("pixel on the line is still white")
	}
	if got := img.RGBAAt(50, 35); got != white {
		t.Errorf("pixel 10px off the line is %v", got)
	}
	if got := img.RGBAAt(5, 25); got != white {
		t.Errorf("pixel before the line start is %v", got)
	}
}

func TestStrokeDashLeavesGaps(t *testing.T) {
	s := newSurface(t, 100, 20)
	s.Stroke(render.NewPath().MoveTo(0, 10).LineTo(100, 10),
		render.StrokeStyle{Color: black, Width: 2, Dash: []float64{10, 10}})

	img := s.Image()
	if got := img.RGBAAt(5, 10); got == white {
		t.Errorf("first dash missing")
	}
	if got := img.RGBAAt(15, 10); got != white {
		t.Errorf("gap painted: %v", got)
	}
	if got := img.RGBAAt(25, 10); got == white {
		t.Errorf("second dash missing")
	}
}

func TestFillUnderTransform(t *testing.T) {
	s := newSurface(t, 60, 60)
	s.Push(render.Transform{OffsetX: 5, OffsetY: 5, Scale: 2})
	s.Fill(render.NewPath().Circle(10, 10, 3), black)
	s.Pop()
	s.Fill(render.NewPath().Circle(50, 50, 3), black)

	img := s.Image()
	if got := img.RGBAAt(25, 25); got.R > 10 {
		t.Errorf("transformed circle centre: got %v", got)
	}
	if got := img.RGBAAt(10, 10); got != white {
		t.Errorf("untransformed position painted: %v", got)
	}
	if got := img.RGBAAt(50, 50); got.R > 10 {
		t.Errorf("circle after Pop: got %v", got)
	}
}

func TestCircularRenderingPaintsSlots(t *testing.T) {
	d, err := winding.NewDesign(winding.DefaultMachine())
	if err != nil {
		t.Fatalf("NewDesign: %v", err)
	}
	s := newSurface(t, 560, 560)
	render.DrawCircular(s, render.Frame{
		Machine:  d.Machine,
		Coils:    d.Coils,
		Selected: render.NoSelection,
		Viewport: render.NewViewport(),
	}, render.DefaultOptions())

	l := render.NewCircularLayout(560, 560, d.Machine.Slots)
	p := l.Outer(1)
	got := s.Image().RGBAAt(int(p.X), int(p.Y))
	if got == white {
		t.Fatalf("slot 1 marker not painted")
	}
	if got.R <= got.G || got.R <= got.B {
		t.Errorf("slot 1 should carry the A+ red, got %v", got)
	}
	if got := s.Image().RGBAAt(280, 280); got != white {
		t.Errorf("stator centre should stay background, got %v", got)
	}
}

func TestTextDrawsGlyphs(t *testing.T) {
	s := newSurface(t, 80, 30)
	s.Text(40, 20, "A+", render.TextStyle{Color: black, Size: 14, Align: render.AlignCenter})

	painted := 0
	img := s.Image()
	for y := 0; y < 30; y++ {
		for x := 0; x < 80; x++ {
			if img.RGBAAt(x, y) != white {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Errorf("no glyph pixels drawn")
	}
}

func TestEncodePNG(t *testing.T) {
	s := newSurface(t, 32, 16)
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("got %v, want 32x16", b)
	}
}
