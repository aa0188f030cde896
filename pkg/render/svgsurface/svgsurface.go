// Package svgsurface draws winding views as standalone SVG documents.
package svgsurface

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
)

// Surface buffers one SVG document. Every Clear starts a new document;
// WriteTo closes it.
type Surface struct {
	w, h   int
	buf    bytes.Buffer
	canvas *svg.SVG
	open   int // <g> elements not yet closed
	done   bool
}

// New returns a w x h surface.
func New(w, h int) *Surface {
	s := &Surface{w: w, h: h}
	s.Clear(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return s
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.w), float64(s.h)
}

func (s *Surface) Clear(bg color.NRGBA) {
	s.buf.Reset()
	s.open = 0
	s.done = false
	s.canvas = svg.New(&s.buf)
	s.canvas.Start(s.w, s.h)
	s.canvas.Rect(0, 0, s.w, s.h, "fill:"+fill(bg))
}

func (s *Surface) Push(t render.Transform) {
	s.canvas.Gtransform(fmt.Sprintf("translate(%s,%s) scale(%s)", num(t.OffsetX), num(t.OffsetY), num(t.Scale)))
	s.open++
}

func (s *Surface) Pop() {
	s.end()
}

func (s *Surface) BeginGroup(name string) {
	s.canvas.Gid(name)
	s.open++
}

func (s *Surface) EndGroup() {
	s.end()
}

func (s *Surface) end() {
	if s.open == 0 {
		return
	}
	s.canvas.Gend()
	s.open--
}

func (s *Surface) Stroke(p *render.Path, st render.StrokeStyle) {
	if p.Empty() {
		return
	}
	style := []string{
		"fill:none",
		"stroke:" + render.Hex(st.Color),
		"stroke-width:" + num(st.Width),
		"stroke-linecap:round",
		"stroke-linejoin:round",
	}
	if st.Color.A != 255 {
		style = append(style, "stroke-opacity:"+num(float64(st.Color.A)/255))
	}
	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			parts[i] = num(d)
		}
		style = append(style, "stroke-dasharray:"+strings.Join(parts, ","))
	}
	s.canvas.Path(p.SVG(), strings.Join(style, ";"))
}

func (s *Surface) Fill(p *render.Path, c color.NRGBA) {
	if p.Empty() {
		return
	}
	s.canvas.Path(p.SVG(), "fill:"+fill(c)+";stroke:none")
}

func (s *Surface) Text(x, y float64, txt string, st render.TextStyle) {
	style := fmt.Sprintf("font-family:sans-serif;font-size:%spx;fill:%s", num(st.Size), fill(st.Color))
	if st.Align == render.AlignCenter {
		style += ";text-anchor:middle"
	}
	s.canvas.Text(int(math.Round(x)), int(math.Round(y)), txt, style)
}

// WriteTo closes any open groups, ends the document and writes it.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	if !s.done {
		for s.open > 0 {
			s.end()
		}
		s.canvas.End()
		s.done = true
	}
	n, err := w.Write(s.buf.Bytes())
	return int64(n), err
}

// String returns the finished document.
func (s *Surface) String() string {
	var b strings.Builder
	s.WriteTo(&b)
	return b.String()
}

func fill(c color.NRGBA) string {
	if c.A == 255 {
		return render.Hex(c)
	}
	return fmt.Sprintf("%s;fill-opacity:%s", render.Hex(c), num(float64(c.A)/255))
}

func num(v float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.3f", v), "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
