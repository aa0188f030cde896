package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/controller"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render/rastersurface"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render/svgsurface"
)

var (
	renderView   string
	renderFormat string
	renderOut    string
	renderSelect int
	renderZoom   float64
	renderPan    []float64
	renderFilter string
	renderTheme  string

	renderOpts = render.DefaultOptions()
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Export a winding diagram",
	Long: `Draw the circular or linear winding diagram and write it as SVG, PNG or
as the list of drawing operations (ops). Without --format the format follows
the --out extension and defaults to SVG.

Examples:
  otw render --out circular.svg
  otw render --view linear --select 3 --zoom 1.5 --pan 20,0 --out linear.png
  otw render --view linear --filter B --indices --phase-labels --format ops`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVar(&renderView, "view", "circular", "diagram: circular or linear")
	f.StringVar(&renderFormat, "format", "", "output format: svg, png or ops")
	f.StringVarP(&renderOut, "out", "o", "-", "output file (- for stdout)")
	f.IntVar(&renderSelect, "select", 0, "highlight coil N (1-based, 0 = none)")
	f.Float64Var(&renderZoom, "zoom", 1, "linear view zoom factor")
	f.Float64SliceVar(&renderPan, "pan", nil, "linear view pan offset dx,dy in pixels")
	f.BoolVar(&renderOpts.ShowSlotNumbers, "slot-numbers", renderOpts.ShowSlotNumbers, "draw slot numbers")
	f.BoolVar(&renderOpts.ShowDirectionArrows, "arrows", renderOpts.ShowDirectionArrows, "draw direction arrows")
	f.BoolVar(&renderOpts.ShowCoilIndices, "indices", renderOpts.ShowCoilIndices, "label coils with their index")
	f.BoolVar(&renderOpts.ShowPhaseLabels, "phase-labels", renderOpts.ShowPhaseLabels, "label coils with their phase")
	f.BoolVar(&renderOpts.ArcConnectors, "arc", renderOpts.ArcConnectors, "draw single-layer coils as arcs")
	f.StringVar(&renderFilter, "filter", "all", "linear view phase filter: all, A, B or C")
	f.StringVar(&renderTheme, "theme", "light", "palette: light or dark")
	flagCfg.BindRenderFlags(f)
}

func runRender(cmd *cobra.Command, args []string) error {
	view, err := controller.ParseView(renderView)
	if err != nil {
		return err
	}
	format := renderFormat
	if format == "" {
		format = formatFor(renderOut)
	}
	opts, err := renderOptions()
	if err != nil {
		return err
	}
	m, a, err := machine()
	if err != nil {
		return err
	}

	w, h := render.CircularWidth, render.CircularHeight
	if view == controller.ViewLinear {
		w, h = render.LinearWidth, render.LinearHeight
	}
	w, h = settings.Size(w, h)

	c := controller.New(
		controller.WithLogger(slog.Default()),
		controller.WithAssigner(a),
		controller.WithCircularSize(float64(w), float64(h)),
	)
	if _, err := c.Recalculate(m); err != nil {
		return fmt.Errorf("invalid machine: %w", err)
	}
	if renderSelect != 0 {
		if err := c.SelectRow(renderSelect - 1); err != nil {
			return fmt.Errorf("--select %d: %w", renderSelect, err)
		}
	}
	vp := render.Viewport{Scale: renderZoom}
	switch len(renderPan) {
	case 0:
	case 2:
		vp.OffsetX, vp.OffsetY = renderPan[0], renderPan[1]
	default:
		return fmt.Errorf("--pan takes two values dx,dy, got %d", len(renderPan))
	}
	c.SetViewport(vp)
	c.SetView(view)

	out, closeFn, err := output(renderOut)
	if err != nil {
		return err
	}
	if err := renderFrame(out, format, view, c.Frame(), opts, w, h); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	slog.Debug("diagram written", "view", view, "format", format, "out", renderOut, "width", w, "height", h)
	return nil
}

func renderOptions() (render.Options, error) {
	opts := renderOpts
	var err error
	if opts.PhaseFilter, err = render.ParsePhaseFilter(renderFilter); err != nil {
		return opts, err
	}
	if opts.Theme, err = render.ParseTheme(renderTheme); err != nil {
		return opts, err
	}
	if opts.Rows, err = settings.RowPolicy(); err != nil {
		return opts, err
	}
	return opts, nil
}

// formatFor guesses the output format from a file name.
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".txt", ".ops":
		return "ops"
	}
	return "svg"
}

// renderFrame draws one view of f on the surface matching format.
func renderFrame(w io.Writer, format string, view controller.View, f render.Frame, opts render.Options, width, height int) error {
	draw := render.DrawCircular
	if view == controller.ViewLinear {
		draw = render.DrawLinear
	}

	switch strings.ToLower(format) {
	case "svg":
		s := svgsurface.New(width, height)
		draw(s, f, opts)
		_, err := s.WriteTo(w)
		return err
	case "png":
		s, err := rastersurface.New(width, height)
		if err != nil {
			return err
		}
		draw(s, f, opts)
		return s.EncodePNG(w)
	case "ops":
		rec := render.NewRecorder(float64(width), float64(height))
		draw(rec, f, opts)
		_, err := rec.WriteTo(w)
		return err
	}
	return fmt.Errorf("unknown format %q (want svg, png or ops)", format)
}
