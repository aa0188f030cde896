package render

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// Stroke widths of the circular view.
const (
	circularStroke         = 2.0
	circularSelectedStroke = 4.0
	chordBulge             = 0.3 // control point push-out for single-layer chords
	chordArrowHead         = 10.0
	radialArrowHead        = 14.0
	labelSize              = 10.0
)

// DrawCircular paints the stator cross-section: ring, slot markers and one
// connector per coil. The surface is cleared first.
func DrawCircular(s Surface, f Frame, opts Options) {
	pal := PaletteFor(opts.Theme)
	s.Clear(pal.Background)
	if f.Machine.Slots <= 0 {
		return
	}

	w, h := s.Size()
	l := NewCircularLayout(w, h, f.Machine.Slots)

	s.BeginGroup("stator")
	s.Stroke(NewPath().Circle(l.CX, l.CY, StatorRadius), StrokeStyle{Color: pal.Stator, Width: 2})
	s.EndGroup()

	drawCircularSlots(s, f, l, pal, opts)

	s.BeginGroup("coils")
	for i, c := range f.Coils {
		s.BeginGroup(coilGroup(i))
		drawCircularCoil(s, f, l, pal, opts, i, c)
		s.EndGroup()
	}
	s.EndGroup()
}

func drawCircularSlots(s Surface, f Frame, l CircularLayout, pal Palette, opts Options) {
	single := f.Machine.Layer == winding.SingleLayer

	s.BeginGroup("slots")
	defer s.EndGroup()

	for slot := 1; slot <= f.Machine.Slots; slot++ {
		col := pal.PhaseColor(f.slotPhase(slot))
		o := l.Outer(slot)
		s.Fill(NewPath().Circle(o.X, o.Y, 6), col)
		if !single {
			in := l.Inner(slot)
			s.Fill(NewPath().Circle(in.X, in.Y, 5), col)
		}
		if opts.ShowSlotNumbers {
			s.Text(o.X-6, o.Y-10, fmt.Sprintf("%d", slot), TextStyle{Color: pal.Label, Size: labelSize})
		}
	}
}

func drawCircularCoil(s Surface, f Frame, l CircularLayout, pal Palette, opts Options, i int, c winding.Coil) {
	col := pal.PhaseColor(c.Phase)
	st := StrokeStyle{Color: col, Width: circularStroke}
	if f.IsSelected(i) {
		st.Width = circularSelectedStroke
	}

	var labelAt Point
	switch {
	case f.Machine.Layer == winding.SingleLayer && opts.ArcConnectors:
		r := (OuterRadius + InnerRadius) / 2
		a1 := AngleForSlot(c.Start, l.Slots)
		a2 := AngleForSlot(c.End, l.Slots)
		s.Stroke(NewPath().Arc(l.CX, l.CY, r, a1, a2, false), st)
		end := l.At(c.End, r)
		if opts.ShowDirectionArrows {
			// tangent of a clockwise arc at its end point
			t := a2 + math.Pi/2
			from := Point{end.X - math.Cos(t), end.Y - math.Sin(t)}
			s.Fill(arrowHead(from, end, chordArrowHead), col)
		}
		labelAt = l.At(c.Start, r)

	case f.Machine.Layer == winding.SingleLayer:
		start, end := l.Outer(c.Start), l.Outer(c.End)
		mid := Point{(start.X + end.X) / 2, (start.Y + end.Y) / 2}
		ctrl := Point{
			X: l.CX + (mid.X-l.CX)*(1+chordBulge),
			Y: l.CY + (mid.Y-l.CY)*(1+chordBulge),
		}
		s.Stroke(NewPath().MoveTo(start.X, start.Y).QuadTo(ctrl.X, ctrl.Y, end.X, end.Y), st)
		if opts.ShowDirectionArrows {
			s.Fill(arrowHead(ctrl, end, chordArrowHead), col)
		}
		labelAt = mid

	default:
		start, end := l.Outer(c.Start), l.Inner(c.End)
		s.Stroke(NewPath().MoveTo(start.X, start.Y).LineTo(end.X, end.Y), st)
		if opts.ShowDirectionArrows {
			s.Fill(arrowHead(start, end, radialArrowHead), col)
		}
		labelAt = Point{(start.X + end.X) / 2, (start.Y + end.Y) / 2}
	}

	if label := opts.coilLabel(i, c); label != "" {
		s.Text(labelAt.X+4, labelAt.Y+4, label, TextStyle{Color: pal.Label, Size: labelSize})
	}
}

// arrowHead returns a closed triangle with its tip at to, pointing along
// the direction from -> to, with sides of length head at ±30°.
func arrowHead(from, to Point, head float64) *Path {
	ang := math.Atan2(to.Y-from.Y, to.X-from.X)
	return NewPath().
		MoveTo(to.X, to.Y).
		LineTo(to.X-head*math.Cos(ang-math.Pi/6), to.Y-head*math.Sin(ang-math.Pi/6)).
		LineTo(to.X-head*math.Cos(ang+math.Pi/6), to.Y-head*math.Sin(ang+math.Pi/6)).
		Close()
}

func coilGroup(i int) string {
	return fmt.Sprintf("coil-%d", i)
}
