// Package controller owns the interactive state of a winding viewer: the
// current design, the selected coil and the linear view's viewport. It
// turns pointer, wheel, click and table events into state changes and
// tells the host which views to repaint.
//
// A Controller is not safe for concurrent use; drive it from one event
// loop.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// ErrNoSuchCoil is returned when a selection names a coil that does not exist.
var ErrNoSuchCoil = errors.New("controller: no such coil")

// State is the pointer state of the linear view.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// View identifies one of the two projections.
type View int

const (
	ViewCircular View = iota
	ViewLinear
)

func (v View) String() string {
	if v == ViewLinear {
		return "linear"
	}
	return "circular"
}

// ParseView accepts "circular" or "linear".
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "circular", "circle":
		return ViewCircular, nil
	case "linear", "line":
		return ViewLinear, nil
	}
	return ViewCircular, fmt.Errorf("controller: unknown view %q", s)
}

// Redraw is a set of views that need repainting.
type Redraw int

const (
	RedrawCircular Redraw = 1 << iota
	RedrawLinear

	RedrawBoth = RedrawCircular | RedrawLinear
)

// Has reports whether r includes every view in v.
func (r Redraw) Has(v Redraw) bool {
	return r&v == v
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithAssigner replaces the phase assignment used for new designs.
func WithAssigner(a winding.PhaseAssigner) Option {
	return func(c *Controller) {
		c.assign = a
	}
}

// WithCircularSize sets the circular surface size used for hit testing.
func WithCircularSize(w, h float64) Option {
	return func(c *Controller) {
		c.circW, c.circH = w, h
	}
}

// OnRedraw registers the function called whenever views need repainting.
func OnRedraw(fn func(Redraw)) Option {
	return func(c *Controller) {
		c.onRedraw = fn
	}
}

// Controller is the interaction state machine.
type Controller struct {
	log      *slog.Logger
	assign   winding.PhaseAssigner
	onRedraw func(Redraw)

	circW, circH float64

	design   *winding.Design
	selected int
	viewport render.Viewport
	view     View

	state        State
	lastX, lastY float64
}

// New returns an idle controller without a design.
func New(opts ...Option) *Controller {
	c := &Controller{
		log:      slog.Default(),
		assign:   winding.AngleBands{},
		circW:    560,
		circH:    560,
		selected: render.NoSelection,
		viewport: render.NewViewport(),
		view:     ViewCircular,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Recalculate builds a new design from m. On error the previous design,
// selection and viewport are kept. A selection that falls outside the new
// coil list is cleared.
func (c *Controller) Recalculate(m winding.Machine) (*winding.Design, error) {
	d, err := winding.NewDesignWith(m, c.assign)
	if err != nil {
		c.log.Debug("machine rejected", "slots", m.Slots, "poles", m.Poles, "phases", m.Phases, "error", err)
		return nil, err
	}
	c.design = d
	if c.selected >= len(d.Coils) {
		c.selected = render.NoSelection
	}
	c.log.Debug("design recalculated",
		"slots", m.Slots, "poles", m.Poles, "layer", m.Layer, "coils", len(d.Coils),
		"kw", d.Figures.Kw)
	c.redraw(RedrawBoth)
	return d, nil
}

// SetAssigner changes the phase assignment used by the next Recalculate.
func (c *Controller) SetAssigner(a winding.PhaseAssigner) {
	if a == nil {
		a = winding.AngleBands{}
	}
	c.assign = a
}

// PointerDown starts a drag of the linear view at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.state = Dragging
	c.lastX, c.lastY = x, y
}

// PointerMove pans the linear view by the movement since the last pointer
// event. It reports whether the viewport changed.
func (c *Controller) PointerMove(x, y float64) bool {
	if c.state != Dragging {
		return false
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	if dx == 0 && dy == 0 {
		return false
	}
	c.viewport.Pan(dx, dy)
	c.redraw(RedrawLinear)
	return true
}

// PointerUp ends a drag. It may be called for releases anywhere.
func (c *Controller) PointerUp() {
	c.state = Idle
}

// Wheel zooms the linear view around (x, y). Positive notches zoom in.
func (c *Controller) Wheel(x, y float64, notches int) {
	if notches == 0 {
		return
	}
	c.viewport.Wheel(x, y, notches)
	c.redraw(RedrawLinear)
}

// Click hit-tests a click on the circular view and selects the first coil
// whose start marker is under it.
func (c *Controller) Click(x, y float64) (int, bool) {
	if c.design == nil {
		return render.NoSelection, false
	}
	l := render.NewCircularLayout(c.circW, c.circH, c.design.Machine.Slots)
	i := l.HitTest(c.design.Coils, x, y)
	if i < 0 {
		return render.NoSelection, false
	}
	c.setSelection(i)
	return i, true
}

// SelectRow selects coil i (0-based) as a click on its table row does.
func (c *Controller) SelectRow(i int) error {
	if c.design == nil || i < 0 || i >= len(c.design.Coils) {
		return fmt.Errorf("%w: %d", ErrNoSuchCoil, i)
	}
	c.setSelection(i)
	return nil
}

// ClearSelection drops the selected coil.
func (c *Controller) ClearSelection() {
	if c.selected == render.NoSelection {
		return
	}
	c.setSelection(render.NoSelection)
}

func (c *Controller) setSelection(i int) {
	c.selected = i
	c.log.Debug("selection changed", "coil", i)
	c.redraw(RedrawBoth)
}

// ToggleView switches between the circular and linear view.
func (c *Controller) ToggleView() View {
	if c.view == ViewCircular {
		c.SetView(ViewLinear)
	} else {
		c.SetView(ViewCircular)
	}
	return c.view
}

// SetView shows v.
func (c *Controller) SetView(v View) {
	if v == c.view {
		return
	}
	c.view = v
	c.log.Debug("view changed", "view", v)
	if v == ViewLinear {
		c.redraw(RedrawLinear)
	} else {
		c.redraw(RedrawCircular)
	}
}

// ResetView returns the linear viewport to its initial pan and zoom.
func (c *Controller) ResetView() {
	c.viewport.Reset()
	c.redraw(RedrawLinear)
}

// SetViewport replaces the linear viewport, clamping its scale.
func (c *Controller) SetViewport(v render.Viewport) {
	c.viewport = render.NewViewport()
	c.viewport.Pan(v.OffsetX, v.OffsetY)
	if v.Scale != 0 {
		c.viewport.ZoomAt(v.OffsetX, v.OffsetY, v.Scale)
	}
	c.redraw(RedrawLinear)
}

// Frame returns the immutable snapshot the renderers draw from.
func (c *Controller) Frame() render.Frame {
	f := render.Frame{
		Selected: c.selected,
		Viewport: c.viewport,
		Assigner: c.assign,
	}
	if c.design != nil {
		f.Machine = c.design.Machine
		f.Coils = c.design.Coils
	}
	return f
}

// Design returns the current design, nil before the first successful
// Recalculate.
func (c *Controller) Design() *winding.Design {
	return c.design
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) View() View {
	return c.view
}

// Selected returns the selected coil index or render.NoSelection.
func (c *Controller) Selected() int {
	return c.selected
}

func (c *Controller) Viewport() render.Viewport {
	return c.viewport
}

func (c *Controller) redraw(r Redraw) {
	if c.onRedraw != nil {
		c.onRedraw(r)
	}
}
