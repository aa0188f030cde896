// Package report formats winding designs for terminals and charts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// printer remembers the first write error so callers can print a block of
// lines and check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteFigures prints the calculated figures.
func WriteFigures(w io.Writer, f winding.Figures) error {
	p := &printer{w: w}
	ff := f.Format()
	p.printf("=== Winding Figures ===\n")
	p.printf("%-4s %-28s %s\n", "q", "slots per pole per phase", ff.Q)
	p.printf("%-4s %-28s %s\n", "τ", "pole pitch (slots)", ff.Tau)
	p.printf("%-4s %-28s %s\n", "y", "coil span (slots)", ff.Y)
	p.printf("%-4s %-28s %s\n", "kp", "pitch factor", ff.Kp)
	p.printf("%-4s %-28s %s\n", "kd", "distribution factor", ff.Kd)
	p.printf("%-4s %-28s %s\n", "kw", "winding factor", ff.Kw)
	return p.err
}

// WriteSummary prints the machine summary card.
func WriteSummary(w io.Writer, s winding.Summary) error {
	p := &printer{w: w}
	p.printf("=== Summary ===\n")
	p.printf("%-26s %d\n", "Slots:", s.Slots)
	p.printf("%-26s %d\n", "Poles:", s.Poles)
	p.printf("%-26s %d\n", "Phases:", s.Phases)
	p.printf("%-26s %d\n", "Pitch offset (k):", s.K)
	p.printf("%-26s %s\n", "Slots per pole per phase:", s.SlotsPerPole)
	p.printf("%-26s %s\n", "Winding factor:", s.WindingFactor)
	p.printf("%-26s %s\n", "Connection:", s.Connection)
	p.printf("%-26s %s\n", "Winding:", s.Winding)
	p.printf("%-26s %s\n", "Pitch:", s.Pitch)
	return p.err
}

// WriteTable prints one line per coil.
func WriteTable(w io.Writer, rows []winding.TableRow) error {
	p := &printer{w: w}
	p.printf("%-6s %-6s %6s %6s   %s\n", "Coil", "Phase", "Start", "End", "Direction")
	p.printf("%s\n", strings.Repeat("-", 44))
	for _, r := range rows {
		p.printf("%-6d %-6s %6d %6d   %s\n", r.Index, r.Phase, r.Start, r.End, r.Direction)
	}
	return p.err
}

// WriteHarmonics prints the factors of each harmonic order.
func WriteHarmonics(w io.Writer, hs []winding.Harmonic) error {
	p := &printer{w: w}
	p.printf("%-6s %10s %10s %10s\n", "Order", "kp", "kd", "kw")
	p.printf("%s\n", strings.Repeat("-", 39))
	for _, h := range hs {
		p.printf("%-6d %10.4f %10.4f %10.4f\n", h.Order, h.Kp, h.Kd, h.Kw)
	}
	return p.err
}

// WriteDesign prints the figures, the summary and the coil table.
func WriteDesign(w io.Writer, d *winding.Design) error {
	if err := WriteFigures(w, d.Figures); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := WriteSummary(w, d.Summary()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n=== Coils (%d) ===\n", len(d.Coils)); err != nil {
		return err
	}
	return WriteTable(w, d.Table())
}
