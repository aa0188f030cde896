package render

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// Circular view dimensions in pixels.
const (
	OuterRadius  = 220.0 // slot departure ring
	InnerRadius  = 180.0 // slot return ring
	StatorRadius = OuterRadius + 15
	HitRadius    = 8.0 // click tolerance around an outer slot marker
)

// Linear view layout in pixels.
const (
	LinearMargin    = 40.0
	LinearTopPad    = 40.0
	LinearBottomPad = 40.0
)

// Default surface sizes of the two views in pixels.
const (
	CircularWidth  = 560
	CircularHeight = 560
	LinearWidth    = 1000
	LinearHeight   = 420
)

// AngleForSlot returns the angle of a 1-based slot on the circular view in
// radians. Slot 1 sits at the top and angles grow with the slot index.
func AngleForSlot(slot, slots int) float64 {
	if slots <= 0 {
		return -math.Pi / 2
	}
	return (2*math.Pi/float64(slots))*float64(slot-1) - math.Pi/2
}

// CircularLayout places slots on two concentric rings centred on a surface.
type CircularLayout struct {
	CX, CY float64
	Slots  int
}

// NewCircularLayout centres the rings on a w x h surface.
func NewCircularLayout(w, h float64, slots int) CircularLayout {
	return CircularLayout{CX: w / 2, CY: h / 2, Slots: slots}
}

// At returns the point at radius r for slot.
func (l CircularLayout) At(slot int, r float64) Point {
	a := AngleForSlot(slot, l.Slots)
	return Point{X: l.CX + r*math.Cos(a), Y: l.CY + r*math.Sin(a)}
}

// Outer returns the slot's position on the departure ring.
func (l CircularLayout) Outer(slot int) Point {
	return l.At(slot, OuterRadius)
}

// Inner returns the slot's position on the return ring.
func (l CircularLayout) Inner(slot int) Point {
	return l.At(slot, InnerRadius)
}

// HitTest returns the index of the first coil whose start slot outer
// marker lies within HitRadius of (x, y), or -1.
func (l CircularLayout) HitTest(coils []winding.Coil, x, y float64) int {
	for i, c := range coils {
		p := l.Outer(c.Start)
		if math.Hypot(x-p.X, y-p.Y) < HitRadius {
			return i
		}
	}
	return -1
}

// LinearLayout places slots on one horizontal axis.
type LinearLayout struct {
	Width, Height float64
	Slots         int
}

// NewLinearLayout lays out slots across a w x h surface.
func NewLinearLayout(w, h float64, slots int) LinearLayout {
	return LinearLayout{Width: w, Height: h, Slots: slots}
}

// Spacing returns the distance between neighbouring slots.
func (l LinearLayout) Spacing() float64 {
	if l.Slots < 2 {
		return 0
	}
	return (l.Width - 2*LinearMargin) / float64(l.Slots-1)
}

// SlotX returns the axis position of a 1-based slot.
func (l LinearLayout) SlotX(slot int) float64 {
	return LinearMargin + float64(slot-1)*l.Spacing()
}

// AxisY returns the height of the slot axis.
func (l LinearLayout) AxisY() float64 {
	return l.Height - LinearBottomPad
}

// RowBottom is where the coil legs leave the knee below the rows.
func (l LinearLayout) RowBottom() float64 {
	return l.AxisY() - 20
}

// MinRowTop is the highest a coil top may be drawn.
func (l LinearLayout) MinRowTop() float64 {
	return LinearTopPad + 10
}
