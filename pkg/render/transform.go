package render

// Transform maps world coordinates to surface pixels by scaling and then
// translating: screen = world·Scale + Offset. This is the canvas order
// "translate(offset) then scale(scale)".
type Transform struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{Scale: 1}

// Apply maps a world point to the screen.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}

// Invert maps a screen point back to world coordinates.
func (t Transform) Invert(p Point) Point {
	if t.Scale == 0 {
		return p
	}
	return Point{X: (p.X - t.OffsetX) / t.Scale, Y: (p.Y - t.OffsetY) / t.Scale}
}

// Then returns the transform applying inner first and t second.
func (t Transform) Then(inner Transform) Transform {
	return Transform{
		OffsetX: t.OffsetX + t.Scale*inner.OffsetX,
		OffsetY: t.OffsetY + t.Scale*inner.OffsetY,
		Scale:   t.Scale * inner.Scale,
	}
}

// TransformStack tracks nested Push/Pop calls for surfaces that apply the
// transform themselves.
type TransformStack struct {
	stack []Transform
}

// Current returns the combined transform, Identity when empty.
func (s *TransformStack) Current() Transform {
	if len(s.stack) == 0 {
		return Identity
	}
	return s.stack[len(s.stack)-1]
}

func (s *TransformStack) Push(t Transform) {
	s.stack = append(s.stack, s.Current().Then(t))
}

func (s *TransformStack) Pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Reset drops all pushed transforms.
func (s *TransformStack) Reset() {
	s.stack = s.stack[:0]
}

// Depth returns the number of pushed transforms.
func (s *TransformStack) Depth() int {
	return len(s.stack)
}
