package render

import "image/color"

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
)

// StrokeStyle describes how a path outline is drawn. Width is in world
// units and scales with the active transform.
type StrokeStyle struct {
	Color color.NRGBA
	Width float64
	Dash  []float64
}

// TextStyle describes a text run. The y coordinate passed to Surface.Text
// is the baseline.
type TextStyle struct {
	Color color.NRGBA
	Size  float64
	Align Align
}

// Surface is the 2D drawing target both views render onto. Every redraw
// starts with Clear and repaints everything.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h float64)
	// Clear fills the whole surface and discards the previous drawing.
	Clear(bg color.NRGBA)
	// Push applies t on top of the current transform until the matching Pop.
	Push(t Transform)
	Pop()
	// BeginGroup and EndGroup bracket logically related primitives.
	BeginGroup(name string)
	EndGroup()
	Stroke(p *Path, st StrokeStyle)
	Fill(p *Path, c color.NRGBA)
	Text(x, y float64, s string, st TextStyle)
}
