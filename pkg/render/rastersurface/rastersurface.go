// Package rastersurface draws winding views into RGBA images for PNG
// export. Shapes are scan converted with golang.org/x/image/vector and
// text is drawn with the Go fonts.
package rastersurface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
)

// flattenTolerance is the curve flattening error in device pixels.
const flattenTolerance = 0.2

// Surface is an in-memory raster target.
type Surface struct {
	img   *image.RGBA
	ras   *vector.Rasterizer
	stack render.TransformStack

	font  *opentype.Font
	faces map[float64]font.Face
}

// New returns a w x h surface filled with white.
func New(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rastersurface: invalid size %dx%d", w, h)
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("rastersurface: failed to load font: %w", err)
	}
	s := &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:   vector.NewRasterizer(w, h),
		font:  f,
		faces: make(map[float64]font.Face),
	}
	s.Clear(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return s, nil
}

// Image returns the drawing. It is shared with the surface.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the drawing as a PNG image.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

func (s *Surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) Clear(bg color.NRGBA) {
	s.stack.Reset()
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (s *Surface) Push(t render.Transform) {
	s.stack.Push(t)
}

func (s *Surface) Pop() {
	s.stack.Pop()
}

// Groups carry no meaning in a raster image.
func (s *Surface) BeginGroup(string) {}
func (s *Surface) EndGroup()         {}

func (s *Surface) Fill(p *render.Path, c color.NRGBA) {
	if p.Empty() {
		return
	}
	t := s.stack.Current()
	s.resetRasterizer()
	for _, seg := range p.Segments() {
		switch seg.Kind {
		case render.SegMove:
			a := t.Apply(seg.P[0])
			s.ras.MoveTo(float32(a.X), float32(a.Y))
		case render.SegLine:
			a := t.Apply(seg.P[0])
			s.ras.LineTo(float32(a.X), float32(a.Y))
		case render.SegQuad:
			b, c := t.Apply(seg.P[0]), t.Apply(seg.P[1])
			s.ras.QuadTo(float32(b.X), float32(b.Y), float32(c.X), float32(c.Y))
		case render.SegClose:
			s.ras.ClosePath()
		}
	}
	s.ras.ClosePath()
	s.paint(c)
}

// Stroke outlines the path with round joins and caps. Every segment
// becomes a quad and every vertex a disc, all wound the same way so the
// rasterizer's accumulated coverage saturates where they overlap.
func (s *Surface) Stroke(p *render.Path, st render.StrokeStyle) {
	if p.Empty() || st.Width <= 0 {
		return
	}
	t := s.stack.Current()
	hw := st.Width * t.Scale / 2
	if hw < 0.5 {
		hw = 0.5
	}

	lines := p.Flatten(flattenTolerance / t.Scale)
	if len(st.Dash) > 0 {
		lines = render.Dash(lines, st.Dash)
	}

	s.resetRasterizer()
	for _, l := range lines {
		pts := make([]render.Point, len(l.Points))
		for i, pt := range l.Points {
			pts[i] = t.Apply(pt)
		}
		if l.Closed && len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		for i := 1; i < len(pts); i++ {
			s.segment(pts[i-1], pts[i], hw)
		}
		for _, pt := range pts {
			s.disc(pt, hw)
		}
	}
	s.paint(st.Color)
}

func (s *Surface) segment(a, b render.Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	s.ras.MoveTo(float32(a.X-nx), float32(a.Y-ny))
	s.ras.LineTo(float32(b.X-nx), float32(b.Y-ny))
	s.ras.LineTo(float32(b.X+nx), float32(b.Y+ny))
	s.ras.LineTo(float32(a.X+nx), float32(a.Y+ny))
	s.ras.ClosePath()
}

func (s *Surface) disc(c render.Point, r float64) {
	const n = 12
	s.ras.MoveTo(float32(c.X+r), float32(c.Y))
	for i := 1; i < n; i++ {
		a := 2 * math.Pi * float64(i) / n
		s.ras.LineTo(float32(c.X+r*math.Cos(a)), float32(c.Y+r*math.Sin(a)))
	}
	s.ras.ClosePath()
}

func (s *Surface) resetRasterizer() {
	b := s.img.Bounds()
	s.ras.Reset(b.Dx(), b.Dy())
	s.ras.DrawOp = draw.Over
}

func (s *Surface) paint(c color.NRGBA) {
	s.ras.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (s *Surface) Text(x, y float64, txt string, st render.TextStyle) {
	t := s.stack.Current()
	face, err := s.face(st.Size * t.Scale)
	if err != nil {
		return
	}
	at := t.Apply(render.Point{X: x, Y: y})
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(st.Color),
		Face: face,
	}
	if st.Align == render.AlignCenter {
		at.X -= float64(d.MeasureString(txt)) / 64 / 2
	}
	d.Dot = fixed.Point26_6{X: fixed.Int26_6(at.X * 64), Y: fixed.Int26_6(at.Y * 64)}
	d.DrawString(txt)
}

func (s *Surface) face(size float64) (font.Face, error) {
	size = math.Round(size*4) / 4
	if size < 1 {
		size = 1
	}
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	s.faces[size] = f
	return f, nil
}
