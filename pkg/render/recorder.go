package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strings"
)

// OpKind names a recorded drawing operation.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpPush   OpKind = "push"
	OpPop    OpKind = "pop"
	OpStroke OpKind = "stroke"
	OpFill   OpKind = "fill"
	OpText   OpKind = "text"
)

// Op is one recorded drawing operation.
type Op struct {
	Kind OpKind

	// Group is the innermost open group, GroupPath all open groups joined by "/"
	Group     string
	GroupPath string

	// Transform is the combined transform active when the op was issued
	Transform Transform

	Path  *Path
	Color color.NRGBA
	Width float64
	Dash  []float64

	X, Y  float64
	Text  string
	Size  float64
	Align Align
}

// Recorder is an in-memory Surface that keeps every operation since the
// last Clear. It backs the tests and the "ops" export format.
type Recorder struct {
	W, H float64
	Ops  []Op

	groups     []string
	transforms TransformStack
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) {
	return r.W, r.H
}

func (r *Recorder) Clear(bg color.NRGBA) {
	r.Ops = r.Ops[:0]
	r.groups = r.groups[:0]
	r.transforms.Reset()
	r.add(Op{Kind: OpClear, Color: bg})
}

func (r *Recorder) Push(t Transform) {
	r.transforms.Push(t)
	r.add(Op{Kind: OpPush})
}

func (r *Recorder) Pop() {
	r.add(Op{Kind: OpPop})
	r.transforms.Pop()
}

func (r *Recorder) BeginGroup(name string) {
	r.groups = append(r.groups, name)
}

func (r *Recorder) EndGroup() {
	if len(r.groups) > 0 {
		r.groups = r.groups[:len(r.groups)-1]
	}
}

func (r *Recorder) Stroke(p *Path, st StrokeStyle) {
	r.add(Op{Kind: OpStroke, Path: p, Color: st.Color, Width: st.Width, Dash: st.Dash})
}

func (r *Recorder) Fill(p *Path, c color.NRGBA) {
	r.add(Op{Kind: OpFill, Path: p, Color: c})
}

func (r *Recorder) Text(x, y float64, s string, st TextStyle) {
	r.add(Op{Kind: OpText, X: x, Y: y, Text: s, Color: st.Color, Size: st.Size, Align: st.Align})
}

func (r *Recorder) add(op Op) {
	if n := len(r.groups); n > 0 {
		op.Group = r.groups[n-1]
		op.GroupPath = strings.Join(r.groups, "/")
	}
	op.Transform = r.transforms.Current()
	r.Ops = append(r.Ops, op)
}

// InGroup returns the ops of the given kind whose innermost group is name.
func (r *Recorder) InGroup(name string, kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Group == name && op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the text of every text op in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// WriteTo dumps the operations as one line each.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, op := range r.Ops {
		line := op.String()
		m, err := fmt.Fprintln(bw, line)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func (op Op) String() string {
	var b strings.Builder
	b.WriteString(string(op.Kind))
	if op.GroupPath != "" {
		fmt.Fprintf(&b, " group=%s", op.GroupPath)
	}
	switch op.Kind {
	case OpClear:
		fmt.Fprintf(&b, " color=%s", Hex(op.Color))
	case OpPush:
		t := op.Transform
		fmt.Fprintf(&b, " offset=%s,%s scale=%s", num(t.OffsetX), num(t.OffsetY), num(t.Scale))
	case OpStroke:
		fmt.Fprintf(&b, " color=%s width=%s", Hex(op.Color), num(op.Width))
		if len(op.Dash) > 0 {
			fmt.Fprintf(&b, " dash=%v", op.Dash)
		}
		fmt.Fprintf(&b, " d=%q", op.Path.SVG())
	case OpFill:
		fmt.Fprintf(&b, " color=%s d=%q", Hex(op.Color), op.Path.SVG())
	case OpText:
		fmt.Fprintf(&b, " at=%s,%s size=%s color=%s text=%q", num(op.X), num(op.Y), num(op.Size), Hex(op.Color), op.Text)
	}
	return b.String()
}
