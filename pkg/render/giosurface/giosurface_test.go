package giosurface

import (
	"image"
	"testing"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

func context(w, h int, density float32) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(w, h)),
		Metric:      unit.Metric{PxPerDp: density, PxPerSp: density},
	}
}

func TestSizeIsInDp(t *testing.T) {
	s := New(context(800, 400, 2), text.NewShaper(text.WithCollection(gofont.Collection())))
	w, h := s.Size()
	if w != 400 || h != 200 {
		t.Errorf("got %vx%v, want 400x200", w, h)
	}
	if dims := s.Done(); dims.Size != image.Pt(800, 400) {
		t.Errorf("Done: got %v", dims.Size)
	}
}

func TestDrawBothViews(t *testing.T) {
	d, err := winding.NewDesign(winding.DefaultMachine())
	if err != nil {
		t.Fatalf("NewDesign: %v", err)
	}
	f := render.Frame{Machine: d.Machine, Coils: d.Coils, Selected: 1, Viewport: render.NewViewport()}
	opts := render.DefaultOptions()
	opts.ShowCoilIndices = true
	shaper := text.NewShaper(text.WithCollection(gofont.Collection()))

	gtx := context(560, 560, 1)
	s := New(gtx, shaper)
	render.DrawCircular(s, f, opts)
	s.Done()

	f.Viewport.Wheel(100, 100, 3)
	s = New(gtx, shaper)
	render.DrawLinear(s, f, opts)
	if len(s.pushed) != 0 {
		t.Errorf("linear view left %d transforms pushed", len(s.pushed))
	}
	s.Push(render.Transform{Scale: 2})
	s.Done()
	if len(s.pushed) != 0 {
		t.Errorf("Done left %d transforms", len(s.pushed))
	}
}
