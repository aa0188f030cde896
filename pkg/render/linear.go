package render

import (
	"fmt"
	"math"
)

// Linear view drawing parameters.
const (
	linearStroke         = 2.0
	linearSelectedStroke = 3.0
	linearSideOffset     = 8.0
	linearKneeDrop       = 6.0
	linearMarkerRadius   = 4.0
	linearSlotRadius     = 6.0
	linearArrowHead      = 6.0
)

var axisDash = []float64{6, 4}

// DrawLinear paints the unrolled winding: the dashed slot axis and one "U"
// shaped coil per visible coil. Everything after Clear is drawn under the
// viewport transform.
func DrawLinear(s Surface, f Frame, opts Options) {
	pal := PaletteFor(opts.Theme)
	s.Clear(pal.Background)
	if f.Machine.Slots <= 0 {
		return
	}

	w, h := s.Size()
	l := NewLinearLayout(w, h, f.Machine.Slots)

	s.Push(f.Viewport.Transform())
	defer s.Pop()

	drawLinearAxis(s, l, pal, opts)

	rows := opts.rows()
	s.BeginGroup("coils")
	for i, c := range f.Coils {
		if !opts.PhaseFilter.Allows(c.Phase) {
			continue
		}
		top := rows.RowTop(i, c, l.RowBottom())
		if limit := l.MinRowTop(); top < limit {
			top = limit
		}
		s.BeginGroup(coilGroup(i))
		drawLinearCoil(s, f, l, pal, opts, i, top)
		s.EndGroup()
	}
	s.EndGroup()
}

func drawLinearAxis(s Surface, l LinearLayout, pal Palette, opts Options) {
	y := l.AxisY()

	s.BeginGroup("axis")
	s.Stroke(NewPath().MoveTo(l.SlotX(1), y).LineTo(l.SlotX(l.Slots), y),
		StrokeStyle{Color: pal.Axis, Width: 1, Dash: axisDash})
	s.EndGroup()

	s.BeginGroup("slots")
	defer s.EndGroup()
	for slot := 1; slot <= l.Slots; slot++ {
		x := l.SlotX(slot)
		circle := NewPath().Circle(x, y, linearSlotRadius)
		s.Fill(circle, pal.SlotFill)
		s.Stroke(circle, StrokeStyle{Color: pal.SlotStroke, Width: 1})
		if opts.ShowSlotNumbers {
			s.Text(x, y+18, fmt.Sprintf("%d", slot), TextStyle{Color: pal.SlotNumber, Size: 11, Align: AlignCenter})
		}
	}
}

func drawLinearCoil(s Surface, f Frame, l LinearLayout, pal Palette, opts Options, i int, top float64) {
	c := f.Coils[i]
	col := pal.PhaseColor(c.Phase)
	width := linearStroke
	if f.IsSelected(i) {
		width = linearSelectedStroke
	}

	axis := l.AxisY()
	bottom := l.RowBottom()
	knee := axis + linearKneeDrop
	x1, x2 := l.SlotX(c.Start), l.SlotX(c.End)
	left, right := math.Min(x1, x2)+linearSideOffset, math.Max(x1, x2)-linearSideOffset

	u := NewPath().
		MoveTo(x1, axis).
		LineTo(x1, knee).
		LineTo(left, bottom).
		LineTo(left, top).
		LineTo(right, top).
		LineTo(right, bottom).
		LineTo(x2, knee).
		LineTo(x2, axis)
	s.Stroke(u, StrokeStyle{Color: col, Width: width})

	// open start marker, filled end marker
	start := NewPath().Circle(x1, axis, linearMarkerRadius)
	s.Fill(start, pal.MarkerFill)
	s.Stroke(start, StrokeStyle{Color: col, Width: 1.5})
	s.Fill(NewPath().Circle(x2, axis, linearMarkerRadius), col)

	if opts.ShowDirectionArrows {
		from := left + (right-left)*0.2
		to := left + (right-left)*0.8
		if x2 < x1 {
			from, to = to, from
		}
		s.Stroke(NewPath().MoveTo(from, top).LineTo(to, top), StrokeStyle{Color: col, Width: 2})
		dir := 1.0
		if to < from {
			dir = -1
		}
		s.Fill(NewPath().
			MoveTo(to, top).
			LineTo(to-dir*linearArrowHead, top-3).
			LineTo(to-dir*linearArrowHead, top+3).
			Close(), col)
	}

	if label := opts.coilLabel(i, c); label != "" {
		s.Text((left+right)/2, top-6, label, TextStyle{Color: pal.Label, Size: labelSize, Align: AlignCenter})
	}
}
