package render

import "math"

// Zoom limits and the per-notch wheel factor of the linear view.
const (
	MinScale = 0.2
	MaxScale = 5.0
	ZoomStep = 1.1
)

// Viewport is the pan/zoom state of the linear view. The drawing is
// translated by the offset and then scaled, so a world point w lands on
// screen at w·Scale + Offset.
type Viewport struct {
	// Zoom factor, always within [MinScale, MaxScale]
	Scale float64

	// Translation in screen pixels
	OffsetX float64
	OffsetY float64
}

// NewViewport returns an unzoomed, unpanned viewport.
func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// Transform returns the viewport as a surface transform.
func (v Viewport) Transform() Transform {
	return Transform{OffsetX: v.OffsetX, OffsetY: v.OffsetY, Scale: v.scale()}
}

// WorldToScreen converts drawing coordinates to screen pixels.
func (v Viewport) WorldToScreen(x, y float64) (float64, float64) {
	p := v.Transform().Apply(Point{x, y})
	return p.X, p.Y
}

// ScreenToWorld converts screen pixels to drawing coordinates.
func (v Viewport) ScreenToWorld(x, y float64) (float64, float64) {
	p := v.Transform().Invert(Point{x, y})
	return p.X, p.Y
}

// Pan moves the drawing by a screen delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt multiplies the scale by factor, clamped to [MinScale, MaxScale],
// keeping the world point under (x, y) at the same screen position.
func (v *Viewport) ZoomAt(x, y, factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	old := v.scale()
	next := clampScale(old * factor)

	// Adjust the offset so the point under the cursor stays put
	ratio := next / old
	v.OffsetX = x - (x-v.OffsetX)*ratio
	v.OffsetY = y - (y-v.OffsetY)*ratio
	v.Scale = next
}

// Wheel applies notches of wheel movement at (x, y). Positive notches
// (wheel up) zoom in by ZoomStep each, negative notches zoom out.
func (v *Viewport) Wheel(x, y float64, notches int) {
	if notches == 0 {
		return
	}
	v.ZoomAt(x, y, math.Pow(ZoomStep, float64(notches)))
}

// Reset returns to the unzoomed, unpanned state.
func (v *Viewport) Reset() {
	*v = NewViewport()
}

func (v Viewport) scale() float64 {
	if v.Scale == 0 {
		return 1
	}
	return clampScale(v.Scale)
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
