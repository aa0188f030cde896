package render

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// PhaseFilter limits the linear view to one phase group.
type PhaseFilter string

const (
	FilterAll PhaseFilter = "ALL"
	FilterA   PhaseFilter = "A"
	FilterB   PhaseFilter = "B"
	FilterC   PhaseFilter = "C"
)

// ParsePhaseFilter accepts ALL, A, B or C in any case.
func ParsePhaseFilter(s string) (PhaseFilter, error) {
	f := PhaseFilter(strings.ToUpper(strings.TrimSpace(s)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterA, FilterB, FilterC:
		return f, nil
	}
	return FilterAll, fmt.Errorf("render: unknown phase filter %q", s)
}

// Allows reports whether a coil of phase p passes the filter.
func (f PhaseFilter) Allows(p winding.Phase) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return p.Group() == f[0]
}

// Options controls what the renderers draw.
type Options struct {
	ShowSlotNumbers     bool
	ShowDirectionArrows bool
	ShowCoilIndices     bool
	ShowPhaseLabels     bool

	// PhaseFilter applies to the linear view only
	PhaseFilter PhaseFilter

	// ArcConnectors draws single-layer coils as arcs between the rings
	// instead of curved chords
	ArcConnectors bool

	// Rows picks the linear row heights; nil means PhaseRows
	Rows RowPolicy

	Theme Theme
}

// DefaultOptions returns the options the viewers start with.
func DefaultOptions() Options {
	return Options{
		ShowSlotNumbers:     true,
		ShowDirectionArrows: true,
		PhaseFilter:         FilterAll,
		Rows:                PhaseRows{Gap: 90},
		Theme:               ThemeLight,
	}
}

func (o Options) rows() RowPolicy {
	if o.Rows == nil {
		return PhaseRows{Gap: 90}
	}
	return o.Rows
}

// coilLabel joins the 1-based index and the phase as enabled.
func (o Options) coilLabel(i int, c winding.Coil) string {
	label := ""
	if o.ShowCoilIndices {
		label = fmt.Sprintf("%d", i+1)
	}
	if o.ShowPhaseLabels {
		if label != "" {
			label += " "
		}
		label += c.Phase.String()
	}
	return label
}
