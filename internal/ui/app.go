package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/controller"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/machinefile"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render/giosurface"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// Options configures the viewer at startup.
type Options struct {
	Machine  winding.Machine
	Assigner winding.PhaseAssigner
	Render   render.Options

	// State may be shared with the caller; nil creates a fresh one
	State *AppState
}

// App drives the Gio winding viewer.
type App struct {
	window *app.Window
	ops    op.Ops

	gvTheme *theme.Theme
	state   *AppState
	log     *slog.Logger
	ctrl    *controller.Controller

	form     *machineForm
	opts     render.Options
	filter   *choice
	rows     *choice
	machines *choice
	entries  []machinefile.Entry

	slotNumbers widget.Bool
	arrows      widget.Bool
	indices     widget.Bool
	phaseLabels widget.Bool
	arcs        widget.Bool
	darkMode    widget.Bool

	calcBtn       widget.Clickable
	openBtn       widget.Clickable
	toggleViewBtn widget.Clickable
	resetViewBtn  widget.Clickable
	clearSelBtn   widget.Clickable
	leftPanelBtn  widget.Clickable
	rightPanelBtn widget.Clickable

	openIcon     *widget.Icon
	circularIcon *widget.Icon
	linearIcon   *widget.Icon
	resetIcon    *widget.Icon
	clearIcon    *widget.Icon

	explorer *explorer.Explorer

	rowClicks []widget.Clickable
	coilList  widget.List
	formList  widget.List
	logList   widget.List

	// Pointer event targets of the two canvases
	circularTag bool
	linearTag   bool
}

// New wires the window, theme, controller and widgets together and
// calculates the initial machine.
func New(w *app.Window, opts Options, log *slog.Logger) *App {
	if opts.State == nil {
		opts.State = NewState()
	}
	if opts.Assigner == nil {
		opts.Assigner = winding.AngleBands{}
	}
	if log == nil {
		log = slog.Default()
	}

	a := &App{
		window:  w,
		gvTheme: theme.NewTheme("", nil, true),
		state:   opts.State,
		log:     log,
		opts:    opts.Render,
	}
	a.ctrl = controller.New(
		controller.WithLogger(log),
		controller.WithAssigner(opts.Assigner),
		controller.WithCircularSize(render.CircularWidth, render.CircularHeight),
		controller.OnRedraw(func(controller.Redraw) { a.invalidate() }),
	)
	if w != nil {
		a.explorer = explorer.NewExplorer(w)
	}

	a.form = newMachineForm(opts.Machine, opts.Assigner, a.recalculate)
	a.filter = newChoice("Linear phases", []string{"ALL", "A", "B", "C"},
		[]string{"All phases", "Phase A", "Phase B", "Phase C"}, a.setFilter)
	a.filter.Set(string(a.opts.PhaseFilter))
	a.rows = newChoice("Linear rows", []string{"phase", "sequential"},
		[]string{"By phase", "Sequential"}, a.setRows)
	if _, ok := a.opts.Rows.(render.SequentialRows); ok {
		a.rows.Set("sequential")
	}

	a.slotNumbers.Value = a.opts.ShowSlotNumbers
	a.arrows.Value = a.opts.ShowDirectionArrows
	a.indices.Value = a.opts.ShowCoilIndices
	a.phaseLabels.Value = a.opts.ShowPhaseLabels
	a.arcs.Value = a.opts.ArcConnectors
	a.darkMode.Value = a.opts.Theme == render.ThemeDark
	a.state.SetDarkMode(a.darkMode.Value)

	a.coilList.Axis = layout.Vertical
	a.formList.Axis = layout.Vertical
	a.logList.Axis = layout.Vertical
	a.logList.ScrollToEnd = true

	a.initIcons()
	a.applyPalette()
	a.recalculate()
	return a
}

// Run processes Gio events until the window is closed.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		if a.explorer != nil {
			a.explorer.ListenEvents(e)
		}
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) initIcons() {
	makeIcon := func(data []byte, name string) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			a.log.Warn("failed to load icon", "icon", name, "error", err)
			return nil
		}
		return icon
	}
	a.openIcon = makeIcon(icons.FileFolderOpen, "open")
	a.circularIcon = makeIcon(icons.ActionDonutLarge, "circular")
	a.linearIcon = makeIcon(icons.ActionTimeline, "linear")
	a.resetIcon = makeIcon(icons.NavigationRefresh, "reset")
	a.clearIcon = makeIcon(icons.ContentClear, "clear")
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

// recalculate reads the form and rebuilds the design. Invalid input keeps
// the previous design on screen.
func (a *App) recalculate() {
	m, assign, err := a.form.Machine()
	if err != nil {
		a.reject(err)
		return
	}
	a.ctrl.SetAssigner(assign)
	d, err := a.ctrl.Recalculate(m)
	if err != nil {
		a.reject(err)
		return
	}
	if len(a.rowClicks) != len(d.Coils) {
		a.rowClicks = make([]widget.Clickable, len(d.Coils))
	}
	a.state.SetStatus(fmt.Sprintf("Z=%d 2p=%d m=%d: %d coils, kw=%s",
		m.Slots, m.Poles, m.Phases, len(d.Coils), d.Figures.Format().Kw))
	a.log.Info("design calculated", "slots", m.Slots, "poles", m.Poles, "coils", len(d.Coils))
}

func (a *App) reject(err error) {
	a.state.SetError(err)
	a.log.Warn("machine rejected", "error", err)
	a.invalidate()
}

func (a *App) setFilter(v string) {
	f, err := render.ParsePhaseFilter(v)
	if err != nil {
		a.log.Warn("bad phase filter", "filter", v, "error", err)
		return
	}
	a.opts.PhaseFilter = f
	a.invalidate()
}

func (a *App) setRows(v string) {
	rows, err := render.ParseRowPolicy(v)
	if err != nil {
		a.log.Warn("bad row policy", "rows", v, "error", err)
		return
	}
	a.opts.Rows = rows
	a.invalidate()
}

// openMachineFile asks for a .wnd file and queues its machines for the
// frame loop.
func (a *App) openMachineFile() {
	if a.explorer == nil {
		return
	}
	go func() {
		file, err := a.explorer.ChooseFile(".wnd")
		if err != nil {
			if !errors.Is(err, explorer.ErrUserDecline) {
				a.log.Error("file picker failed", "error", err)
			}
			return
		}
		defer file.Close()

		name := "machine file"
		if f, ok := file.(*os.File); ok {
			name = f.Name()
		}
		entries, err := readMachines(name, file)
		if err != nil {
			a.state.SetError(err)
			a.log.Error("failed to load machine file", "file", name, "error", err)
			a.invalidate()
			return
		}
		a.state.QueueMachines(name, entries)
		a.log.Info("machine file loaded", "file", name, "machines", len(entries))
		a.invalidate()
	}()
}

func readMachines(name string, r io.Reader) ([]machinefile.Entry, error) {
	p, err := machinefile.NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	entries, err := f.Entries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w: no machine declared", name, machinefile.ErrInvalidField)
	}
	return entries, nil
}

// takeMachines applies machines queued by openMachineFile.
func (a *App) takeMachines() {
	entries := a.state.TakeMachines()
	if len(entries) == 0 {
		return
	}
	a.entries = entries
	a.machines = nil
	if len(entries) > 1 {
		values := make([]string, len(entries))
		for i, e := range entries {
			values[i] = e.Name
		}
		a.machines = newChoice("Machine", values, nil, a.pickMachine)
	}
	a.pickMachine(entries[0].Name)
}

func (a *App) pickMachine(name string) {
	e, err := machinefile.Pick(a.entries, name)
	if err != nil {
		a.reject(err)
		return
	}
	a.form.Set(e.Machine, e.Assigner)
	a.recalculate()
}

func (a *App) applyPalette() {
	if a.darkMode.Value {
		a.opts.Theme = render.ThemeDark
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 120, G: 150, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
	} else {
		a.opts.Theme = render.ThemeLight
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
		})
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.takeMachines()
	a.handleClicks(gtx)
	state := a.state.Snapshot()

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutHeader(gtx, state)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.layoutWorkspace(gtx, state)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutStatus(gtx, state)
		}),
	)
}

func (a *App) handleClicks(gtx layout.Context) {
	if a.calcBtn.Clicked(gtx) || a.form.submitted(gtx) {
		a.recalculate()
	}
	if a.openBtn.Clicked(gtx) {
		a.openMachineFile()
	}
	if a.toggleViewBtn.Clicked(gtx) {
		v := a.ctrl.ToggleView()
		a.log.Info("view changed", "view", v)
	}
	if a.resetViewBtn.Clicked(gtx) {
		a.ctrl.ResetView()
	}
	if a.clearSelBtn.Clicked(gtx) {
		a.ctrl.ClearSelection()
	}
	if a.leftPanelBtn.Clicked(gtx) {
		a.state.SetLeftPanelVisible(!a.state.Snapshot().LeftPanelVisible)
	}
	if a.rightPanelBtn.Clicked(gtx) {
		a.state.SetRightPanelVisible(!a.state.Snapshot().RightPanelVisible)
	}
	for i := range a.rowClicks {
		if a.rowClicks[i].Clicked(gtx) {
			if err := a.ctrl.SelectRow(i); err != nil {
				a.log.Warn("row selection failed", "row", i, "error", err)
			}
		}
	}

	toggles := []struct {
		b   *widget.Bool
		dst *bool
	}{
		{&a.slotNumbers, &a.opts.ShowSlotNumbers},
		{&a.arrows, &a.opts.ShowDirectionArrows},
		{&a.indices, &a.opts.ShowCoilIndices},
		{&a.phaseLabels, &a.opts.ShowPhaseLabels},
		{&a.arcs, &a.opts.ArcConnectors},
	}
	for _, t := range toggles {
		if t.b.Update(gtx) {
			*t.dst = t.b.Value
			a.invalidate()
		}
	}
	if a.darkMode.Update(gtx) {
		a.state.SetDarkMode(a.darkMode.Value)
		a.applyPalette()
		a.invalidate()
	}
}

func (a *App) layoutHeader(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	th := a.gvTheme.Theme
	return layout.Inset{
		Top: unit.Dp(12), Bottom: unit.Dp(4), Left: unit.Dp(16), Right: unit.Dp(16),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		viewIcon, viewDesc := a.linearIcon, "Show linear view"
		if a.ctrl.View() == controller.ViewLinear {
			viewIcon, viewDesc = a.circularIcon, "Show circular view"
		}
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.H6(th, "Stator Winding Designer").Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.openBtn, a.openIcon, "Open machine file")
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if a.machines == nil {
					return layout.Dimensions{}
				}
				gtx.Constraints.Max.X = gtx.Dp(unit.Dp(260))
				return layout.Inset{Left: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return a.machines.Layout(gtx, a.gvTheme)
				})
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.toggleViewBtn, viewIcon, viewDesc)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.resetViewBtn, a.resetIcon, "Reset view")
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.clearSelBtn, a.clearIcon, "Clear selection")
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := "Hide Settings"
				if !state.LeftPanelVisible {
					label = "Show Settings"
				}
				btn := material.Button(th, &a.leftPanelBtn, label)
				btn.Inset = layout.UniformInset(unit.Dp(6))
				return btn.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := "Hide Results"
				if !state.RightPanelVisible {
					label = "Show Results"
				}
				btn := material.Button(th, &a.rightPanelBtn, label)
				btn.Inset = layout.UniformInset(unit.Dp(6))
				return btn.Layout(gtx)
			}),
		)
	})
}

func (a *App) iconButton(gtx layout.Context, click *widget.Clickable, icon *widget.Icon, desc string) layout.Dimensions {
	if icon == nil {
		btn := material.Button(a.gvTheme.Theme, click, desc)
		btn.Inset = layout.UniformInset(unit.Dp(6))
		return btn.Layout(gtx)
	}
	btn := material.IconButton(a.gvTheme.Theme, click, icon, desc)
	btn.Size = unit.Dp(20)
	btn.Inset = layout.UniformInset(unit.Dp(8))
	return btn.Layout(gtx)
}

func (a *App) layoutWorkspace(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	children := make([]layout.FlexChild, 0, 3)
	if state.LeftPanelVisible {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(unit.Dp(280))
			gtx.Constraints.Max.X = width
			gtx.Constraints.Min.X = width
			return a.layoutPanelSurface(gtx, a.layoutSettings)
		}))
	}
	children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Bottom: unit.Dp(8)}.Layout(gtx, a.layoutCanvas)
	}))
	if state.RightPanelVisible {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			width := gtx.Dp(unit.Dp(320))
			gtx.Constraints.Max.X = width
			gtx.Constraints.Min.X = width
			return a.layoutPanelSurface(gtx, a.layoutResults)
		}))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

func (a *App) layoutPanelSurface(gtx layout.Context, body layout.Widget) layout.Dimensions {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			rr := gtx.Dp(unit.Dp(10))
			paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg2, clip.RRect{
				Rect: image.Rectangle{Max: gtx.Constraints.Max},
				NW:   rr, NE: rr, SW: rr, SE: rr,
			}.Op(gtx.Ops))
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(10)).Layout(gtx, body)
		}),
	)
}

func (a *App) layoutSettings(gtx layout.Context) layout.Dimensions {
	th := a.gvTheme.Theme
	sections := []layout.Widget{
		material.H6(th, "Machine").Layout,
		func(gtx layout.Context) layout.Dimensions { return a.form.Layout(gtx, a.gvTheme) },
		func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(12)}.Layout(gtx,
				material.Button(th, &a.calcBtn, "Calculate").Layout)
		},
		material.H6(th, "Display").Layout,
		material.CheckBox(th, &a.slotNumbers, "Slot numbers").Layout,
		material.CheckBox(th, &a.arrows, "Direction arrows").Layout,
		material.CheckBox(th, &a.indices, "Coil indices").Layout,
		material.CheckBox(th, &a.phaseLabels, "Phase labels").Layout,
		material.CheckBox(th, &a.arcs, "Arc connectors (single layer)").Layout,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.filter.Layout(gtx, a.gvTheme)
			})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.rows.Layout(gtx, a.gvTheme)
			})
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, material.Body2(th, "Dark mode").Layout),
					layout.Rigid(material.Switch(th, &a.darkMode, "Dark mode").Layout),
				)
			})
		},
	}
	return material.List(th, &a.formList).Layout(gtx, len(sections), func(gtx layout.Context, i int) layout.Dimensions {
		return sections[i](gtx)
	})
}

func (a *App) layoutCanvas(gtx layout.Context) layout.Dimensions {
	if a.ctrl.View() == controller.ViewLinear {
		return a.layoutLinear(gtx)
	}
	return layout.Center.Layout(gtx, a.layoutCircular)
}

// layoutCircular draws the circular view at its fixed size so clicks map
// onto the same layout the controller hit-tests against.
func (a *App) layoutCircular(gtx layout.Context) layout.Dimensions {
	for {
		ev, ok := gtx.Event(pointer.Filter{Target: &a.circularTag, Kinds: pointer.Press})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok || pe.Buttons != pointer.ButtonPrimary {
			continue
		}
		x, y := toDp(gtx, pe.Position.X, pe.Position.Y)
		if i, hit := a.ctrl.Click(x, y); hit {
			a.coilList.ScrollTo(i)
		}
	}

	size := image.Pt(gtx.Dp(unit.Dp(render.CircularWidth)), gtx.Dp(unit.Dp(render.CircularHeight)))
	gtx.Constraints = layout.Exact(size)
	s := giosurface.New(gtx, a.gvTheme.Theme.Shaper)
	render.DrawCircular(s, a.ctrl.Frame(), a.opts)
	dims := s.Done()

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	pointer.CursorPointer.Add(gtx.Ops)
	event.Op(gtx.Ops, &a.circularTag)
	area.Pop()
	return dims
}

// layoutLinear draws the linear view over the whole canvas; dragging pans
// it and the wheel zooms around the pointer.
func (a *App) layoutLinear(gtx layout.Context) layout.Dimensions {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  &a.linearTag,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -1000, Max: 1000},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		x, y := toDp(gtx, pe.Position.X, pe.Position.Y)
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons == pointer.ButtonPrimary {
				a.ctrl.PointerDown(x, y)
			}
		case pointer.Drag:
			a.ctrl.PointerMove(x, y)
		case pointer.Release, pointer.Cancel:
			a.ctrl.PointerUp()
		case pointer.Scroll:
			switch {
			case pe.Scroll.Y < 0:
				a.ctrl.Wheel(x, y, 1)
			case pe.Scroll.Y > 0:
				a.ctrl.Wheel(x, y, -1)
			}
		}
	}

	size := gtx.Constraints.Max
	gtx.Constraints = layout.Exact(size)
	s := giosurface.New(gtx, a.gvTheme.Theme.Shaper)
	render.DrawLinear(s, a.ctrl.Frame(), a.opts)
	dims := s.Done()

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	if a.ctrl.State() == controller.Dragging {
		pointer.CursorGrabbing.Add(gtx.Ops)
	} else {
		pointer.CursorGrab.Add(gtx.Ops)
	}
	event.Op(gtx.Ops, &a.linearTag)
	area.Pop()
	return dims
}

func toDp(gtx layout.Context, x, y float32) (float64, float64) {
	d := gtx.Metric.PxPerDp
	if d <= 0 {
		d = 1
	}
	return float64(x / d), float64(y / d)
}

func (a *App) layoutResults(gtx layout.Context) layout.Dimensions {
	th := a.gvTheme.Theme
	d := a.ctrl.Design()
	if d == nil {
		return material.Body2(th, "No valid machine yet").Layout(gtx)
	}
	f := d.Figures.Format()
	s := d.Summary()
	rows := d.Table()

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.H6(th, "Results").Layout),
		layout.Rigid(resultLine(th, "Slots per pole per phase (q)", f.Q)),
		layout.Rigid(resultLine(th, "Pole pitch (τ)", f.Tau)),
		layout.Rigid(resultLine(th, "Coil span (y)", f.Y)),
		layout.Rigid(resultLine(th, "Pitch factor (kp)", f.Kp)),
		layout.Rigid(resultLine(th, "Distribution factor (kd)", f.Kd)),
		layout.Rigid(resultLine(th, "Winding factor (kw)", f.Kw)),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(material.H6(th, "Summary").Layout),
		layout.Rigid(resultLine(th, "Slots / poles / phases", fmt.Sprintf("%d / %d / %d", s.Slots, s.Poles, s.Phases))),
		layout.Rigid(resultLine(th, "Connection", s.Connection)),
		layout.Rigid(resultLine(th, "Winding", s.Winding)),
		layout.Rigid(resultLine(th, "Pitch", fmt.Sprintf("%s (k=%d)", s.Pitch, s.K))),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(material.H6(th, fmt.Sprintf("Coils (%d)", len(rows))).Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return material.List(th, &a.coilList).Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
				return a.layoutCoilRow(gtx, i, rows[i])
			})
		}),
	)
}

func resultLine(th *material.Theme, label, value string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
			layout.Flexed(1, material.Body2(th, label).Layout),
			layout.Rigid(material.Body1(th, value).Layout),
		)
	}
}

func (a *App) layoutCoilRow(gtx layout.Context, i int, row winding.TableRow) layout.Dimensions {
	if i >= len(a.rowClicks) {
		return layout.Dimensions{}
	}
	th := a.gvTheme.Theme
	click := &a.rowClicks[i]
	selected := a.ctrl.Selected() == i
	pal := render.PaletteFor(a.opts.Theme)
	ph, _ := winding.ParsePhase(row.Phase)

	return click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				if selected {
					bg := a.gvTheme.Palette.ContrastBg
					bg.A = 60
					paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
				} else if click.Hovered() {
					bg := a.gvTheme.Palette.Fg
					bg.A = 20
					paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
				}
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Top: unit.Dp(3), Bottom: unit.Dp(3), Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							gtx.Constraints.Min.X = gtx.Dp(unit.Dp(36))
							return material.Body2(th, fmt.Sprintf("%d", row.Index)).Layout(gtx)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							gtx.Constraints.Min.X = gtx.Dp(unit.Dp(40))
							lbl := material.Body2(th, row.Phase)
							lbl.Color = pal.PhaseColor(ph)
							return lbl.Layout(gtx)
						}),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(th, row.Direction)
							lbl.Alignment = text.End
							return lbl.Layout(gtx)
						}),
					)
				})
			}),
		)
	})
}

func (a *App) layoutStatus(gtx layout.Context, state StateSnapshot) layout.Dimensions {
	th := a.gvTheme.Theme
	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				status := state.Status
				if state.FilePath != "" {
					status = state.FilePath + "  ·  " + status
				}
				lbl := material.Body2(th, status)
				if state.LastError != nil {
					lbl = material.Body2(th, "Error: "+state.LastError.Error())
					lbl.Color = color.NRGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 255}
				}
				return lbl.Layout(gtx)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				height := gtx.Dp(unit.Dp(96))
				gtx.Constraints.Min.Y = height
				gtx.Constraints.Max.Y = height
				return material.List(th, &a.logList).Layout(gtx, len(state.Logs), func(gtx layout.Context, i int) layout.Dimensions {
					return material.Caption(th, state.Logs[i]).Layout(gtx)
				})
			}),
		)
	})
}
