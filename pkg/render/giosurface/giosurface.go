// Package giosurface adapts the winding renderers to a Gio frame.
package giosurface

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
)

// Surface records drawing operations into a layout context. Coordinates
// are in dp; New scales them to the window's pixel density.
type Surface struct {
	gtx    layout.Context
	shaper *text.Shaper
	w, h   float64

	base   op.TransformStack
	clip   clip.Stack
	pushed []op.TransformStack
}

// New starts drawing into the area described by gtx.Constraints.Max. The
// returned surface must be closed with Done before gtx is used again.
func New(gtx layout.Context, shaper *text.Shaper) *Surface {
	size := gtx.Constraints.Max
	density := gtx.Metric.PxPerDp
	if density <= 0 {
		density = 1
	}
	s := &Surface{
		gtx:    gtx,
		shaper: shaper,
		w:      float64(size.X) / float64(density),
		h:      float64(size.Y) / float64(density),
	}
	s.clip = clip.Rect{Max: size}.Push(gtx.Ops)
	s.base = op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(density, density))).Push(gtx.Ops)

	// Text sizes are in surface units; the base transform already applies density
	s.gtx.Metric = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	return s
}

// Done pops every transform and the clip and returns the area drawn on.
func (s *Surface) Done() layout.Dimensions {
	for len(s.pushed) > 0 {
		s.Pop()
	}
	s.base.Pop()
	s.clip.Pop()
	return layout.Dimensions{Size: s.gtx.Constraints.Max}
}

func (s *Surface) Size() (float64, float64) {
	return s.w, s.h
}

func (s *Surface) Clear(bg color.NRGBA) {
	for len(s.pushed) > 0 {
		s.Pop()
	}
	paint.Fill(s.gtx.Ops, bg)
}

func (s *Surface) Push(t render.Transform) {
	a := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(float32(t.Scale), float32(t.Scale))).
		Offset(f32.Pt(float32(t.OffsetX), float32(t.OffsetY)))
	s.pushed = append(s.pushed, op.Affine(a).Push(s.gtx.Ops))
}

func (s *Surface) Pop() {
	if n := len(s.pushed); n > 0 {
		s.pushed[n-1].Pop()
		s.pushed = s.pushed[:n-1]
	}
}

// Gio ops have no grouping.
func (s *Surface) BeginGroup(string) {}
func (s *Surface) EndGroup()         {}

func (s *Surface) Stroke(p *render.Path, st render.StrokeStyle) {
	if p.Empty() || st.Width <= 0 {
		return
	}
	var spec clip.PathSpec
	if len(st.Dash) > 0 {
		spec = s.polylines(render.Dash(p.Flatten(0.25), st.Dash))
	} else {
		spec = s.path(p)
	}
	paint.FillShape(s.gtx.Ops, st.Color, clip.Stroke{Path: spec, Width: float32(st.Width)}.Op())
}

func (s *Surface) Fill(p *render.Path, c color.NRGBA) {
	if p.Empty() {
		return
	}
	paint.FillShape(s.gtx.Ops, c, clip.Outline{Path: s.path(p)}.Op())
}

func (s *Surface) path(p *render.Path) clip.PathSpec {
	var path clip.Path
	path.Begin(s.gtx.Ops)
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case render.SegMove:
			path.MoveTo(pt(seg.P[0]))
		case render.SegLine:
			path.LineTo(pt(seg.P[0]))
		case render.SegQuad:
			path.QuadTo(pt(seg.P[0]), pt(seg.P[1]))
		case render.SegClose:
			path.Close()
		}
	}
	return path.End()
}

func (s *Surface) polylines(lines []render.Polyline) clip.PathSpec {
	var path clip.Path
	path.Begin(s.gtx.Ops)
	for _, l := range lines {
		if len(l.Points) == 0 {
			continue
		}
		path.MoveTo(pt(l.Points[0]))
		for _, p := range l.Points[1:] {
			path.LineTo(pt(p))
		}
		if l.Closed {
			path.Close()
		}
	}
	return path.End()
}

func pt(p render.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

// Text lays out a single line label with its baseline at y.
func (s *Surface) Text(x, y float64, txt string, st render.TextStyle) {
	colMacro := op.Record(s.gtx.Ops)
	paint.ColorOp{Color: st.Color}.Add(s.gtx.Ops)
	material := colMacro.Stop()

	gtx := s.gtx
	gtx.Constraints = layout.Constraints{Max: image.Pt(1<<14, 1<<14)}

	macro := op.Record(gtx.Ops)
	label := widget.Label{Alignment: text.Start, MaxLines: 1}
	dims := label.Layout(gtx, s.shaper, font.Font{}, unit.Sp(float32(st.Size)), txt, material)
	call := macro.Stop()

	left := float32(x)
	if st.Align == render.AlignCenter {
		left -= float32(dims.Size.X) / 2
	}
	top := float32(y) - float32(dims.Size.Y-dims.Baseline)

	stack := op.Affine(f32.Affine2D{}.Offset(f32.Pt(left, top))).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}
