package svgsurface

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

func reference(t *testing.T) render.Frame {
	t.Helper()
	d, err := winding.NewDesign(winding.DefaultMachine())
	if err != nil {
		t.Fatalf("NewDesign: %v", err)
	}
	return render.Frame{Machine: d.Machine, Coils: d.Coils, Selected: 3, Viewport: render.NewViewport()}
}

// wellFormed decodes the whole document and fails on any XML error.
func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("document is not well formed: %v\n%s", err, doc)
		}
	}
}

func TestCircularDocument(t *testing.T) {
	s := New(560, 560)
	render.DrawCircular(s, reference(t), render.DefaultOptions())
	doc := s.String()

	wellFormed(t, doc)
	if !strings.HasPrefix(strings.TrimSpace(doc), "<?xml") {
		t.Errorf("missing xml declaration")
	}
	for _, want := range []string{`id="stator"`, `id="slots"`, `id="coil-0"`, `id="coil-23"`, "stroke-width:4"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document lacks %s", want)
		}
	}
	if n := strings.Count(doc, "stroke-width:4"); n != 1 {
		t.Errorf("got %d selected strokes, want 1", n)
	}
	if strings.Contains(doc, `id="coil-24"`) {
		t.Errorf("document has more coils than the design")
	}
}

func TestLinearDocumentCarriesViewport(t *testing.T) {
	f := reference(t)
	f.Viewport.Wheel(0, 0, 1)
	f.Viewport.Pan(25, 10)

	s := New(1000, 420)
	render.DrawLinear(s, f, render.DefaultOptions())
	doc := s.String()

	wellFormed(t, doc)
	if !strings.Contains(doc, `transform="translate(25,10) scale(1.1)"`) {
		t.Errorf("viewport transform missing:\n%s", doc)
	}
	if !strings.Contains(doc, "stroke-dasharray:6,4") {
		t.Errorf("axis dash missing")
	}
	if !strings.Contains(doc, "text-anchor:middle") {
		t.Errorf("centred slot numbers missing")
	}
}

func TestWriteToIsRepeatable(t *testing.T) {
	s := New(100, 100)
	s.BeginGroup("left-open")
	s.Push(render.Transform{Scale: 2})

	first := s.String()
	second := s.String()
	if first != second {
		t.Fatalf("second write differs from the first")
	}
	wellFormed(t, first)
	if n := strings.Count(first, "</svg>"); n != 1 {
		t.Errorf("got %d closing tags, want 1", n)
	}
}

func TestClearStartsOver(t *testing.T) {
	s := New(100, 100)
	s.Text(10, 10, "old", render.TextStyle{Size: 10})
	s.Clear(render.PaletteFor(render.ThemeDark).Background)
	doc := s.String()
	if strings.Contains(doc, "old") {
		t.Errorf("content survived Clear")
	}
	if !strings.Contains(doc, "fill:#12141a") {
		t.Errorf("background not repainted:\n%s", doc)
	}
}

func TestTextIsEscaped(t *testing.T) {
	s := New(100, 100)
	s.Text(5, 5, "A<B & C>", render.TextStyle{Size: 10})
	wellFormed(t, s.String())
}
