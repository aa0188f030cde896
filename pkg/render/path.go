package render

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in surface pixels.
type Point struct {
	X, Y float64
}

// SegmentKind identifies a path command.
type SegmentKind int

const (
	SegMove SegmentKind = iota
	SegLine
	SegQuad
	SegClose
)

// Segment is one path command. Line and Move use P[0]; Quad uses P[0] as
// the control point and P[1] as the end point.
type Segment struct {
	Kind SegmentKind
	P    [2]Point
}

// Path is a backend-neutral outline made of moves, lines, quadratic curves
// and closes. Arcs are converted to quadratic curves when added so every
// surface draws exactly the same geometry.
type Path struct {
	segs    []Segment
	start   Point
	cur     Point
	hasCurr bool
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// Segments returns the recorded commands.
func (p *Path) Segments() []Segment {
	return p.segs
}

// Empty reports whether the path has no drawing commands.
func (p *Path) Empty() bool {
	return len(p.segs) == 0
}

func (p *Path) MoveTo(x, y float64) *Path {
	pt := Point{x, y}
	p.segs = append(p.segs, Segment{Kind: SegMove, P: [2]Point{pt}})
	p.start, p.cur, p.hasCurr = pt, pt, true
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	if !p.hasCurr {
		return p.MoveTo(x, y)
	}
	pt := Point{x, y}
	p.segs = append(p.segs, Segment{Kind: SegLine, P: [2]Point{pt}})
	p.cur = pt
	return p
}

func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	if !p.hasCurr {
		p.MoveTo(cx, cy)
	}
	end := Point{x, y}
	p.segs = append(p.segs, Segment{Kind: SegQuad, P: [2]Point{{cx, cy}, end}})
	p.cur = end
	return p
}

func (p *Path) Close() *Path {
	if !p.hasCurr {
		return p
	}
	p.segs = append(p.segs, Segment{Kind: SegClose})
	p.cur = p.start
	return p
}

// maxArcStep is the largest sweep approximated by a single quadratic curve.
const maxArcStep = math.Pi / 8

// Arc adds a circular arc around (cx, cy) from angle a0 to a1 in radians,
// sweeping with increasing angle unless ccw is set. When the path already
// has a current point a straight line joins it to the arc start.
func (p *Path) Arc(cx, cy, r, a0, a1 float64, ccw bool) *Path {
	sweep := a1 - a0
	switch {
	case !ccw && sweep >= 2*math.Pi, ccw && sweep <= -2*math.Pi:
		sweep = math.Copysign(2*math.Pi, sweep)
	case !ccw:
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	default:
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	}

	sx, sy := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	if p.hasCurr {
		p.LineTo(sx, sy)
	} else {
		p.MoveTo(sx, sy)
	}
	if sweep == 0 || r <= 0 {
		return p
	}

	n := int(math.Ceil(math.Abs(sweep) / maxArcStep))
	step := sweep / float64(n)
	k := r / math.Cos(step/2)
	for i := 0; i < n; i++ {
		from := a0 + float64(i)*step
		mid := from + step/2
		to := from + step
		p.QuadTo(cx+k*math.Cos(mid), cy+k*math.Sin(mid), cx+r*math.Cos(to), cy+r*math.Sin(to))
	}
	return p
}

// Circle adds a closed circle as a new subpath.
func (p *Path) Circle(cx, cy, r float64) *Path {
	p.hasCurr = false
	p.Arc(cx, cy, r, 0, 2*math.Pi, false)
	return p.Close()
}

// SVG renders the path as SVG path data.
func (p *Path) SVG() string {
	var b strings.Builder
	for i, s := range p.segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s.Kind {
		case SegMove:
			fmt.Fprintf(&b, "M%s,%s", num(s.P[0].X), num(s.P[0].Y))
		case SegLine:
			fmt.Fprintf(&b, "L%s,%s", num(s.P[0].X), num(s.P[0].Y))
		case SegQuad:
			fmt.Fprintf(&b, "Q%s,%s %s,%s", num(s.P[0].X), num(s.P[0].Y), num(s.P[1].X), num(s.P[1].Y))
		case SegClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Polyline is a flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten converts the path into polylines, subdividing curves until the
// deviation from the true curve is below tol pixels.
func (p *Path) Flatten(tol float64) []Polyline {
	if tol <= 0 {
		tol = 0.25
	}
	var out []Polyline
	var cur *Polyline
	flush := func() {
		if cur != nil && len(cur.Points) > 1 {
			out = append(out, *cur)
		}
		cur = nil
	}
	last := Point{}
	for _, s := range p.segs {
		switch s.Kind {
		case SegMove:
			flush()
			cur = &Polyline{Points: []Point{s.P[0]}}
			last = s.P[0]
		case SegLine:
			if cur == nil {
				cur = &Polyline{Points: []Point{last}}
			}
			cur.Points = append(cur.Points, s.P[0])
			last = s.P[0]
		case SegQuad:
			if cur == nil {
				cur = &Polyline{Points: []Point{last}}
			}
			cur.Points = appendQuad(cur.Points, last, s.P[0], s.P[1], tol)
			last = s.P[1]
		case SegClose:
			if cur != nil {
				cur.Closed = true
				last = cur.Points[0]
			}
			flush()
		}
	}
	flush()
	return out
}

func appendQuad(pts []Point, p0, c, p1 Point, tol float64) []Point {
	// deviation of a quadratic from its chord is at most |p0 - 2c + p1| / 4
	dx := p0.X - 2*c.X + p1.X
	dy := p0.Y - 2*c.Y + p1.Y
	dev := math.Hypot(dx, dy) / 4
	n := int(math.Ceil(math.Sqrt(dev / tol)))
	if n < 1 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		pts = append(pts, Point{
			X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
			Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
		})
	}
	return pts
}

// Dash splits polylines into the "on" runs of a dash pattern. An empty or
// all-zero pattern returns the input unchanged.
func Dash(lines []Polyline, pattern []float64) []Polyline {
	total := 0.0
	for _, d := range pattern {
		if d < 0 {
			return lines
		}
		total += d
	}
	if total == 0 {
		return lines
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}

	var out []Polyline
	for _, l := range lines {
		pts := l.Points
		if l.Closed && len(pts) > 0 {
			pts = append(append([]Point(nil), pts...), pts[0])
		}
		idx, left, on := 0, pattern[0], true
		var run []Point
		if on && len(pts) > 0 {
			run = []Point{pts[0]}
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
			pos := 0.0
			for segLen-pos > left {
				pos += left
				t := pos / segLen
				pt := Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
				if on {
					run = append(run, pt)
					out = append(out, Polyline{Points: run})
					run = nil
				} else {
					run = []Point{pt}
				}
				on = !on
				idx = (idx + 1) % len(pattern)
				left = pattern[idx]
			}
			left -= segLen - pos
			if on {
				run = append(run, b)
			}
		}
		if on && len(run) > 1 {
			out = append(out, Polyline{Points: run})
		}
	}
	return out
}
