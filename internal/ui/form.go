package ui

import (
	"fmt"
	"strconv"
	"strings"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/theme"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// machineForm edits the machine parameters.
type machineForm struct {
	phases widget.Editor
	slots  widget.Editor
	poles  widget.Editor
	offset widget.Editor

	layer      *choice
	pitch      *choice
	connection *choice
	assignment *choice
}

// newMachineForm shows m and a; onChange runs when a dropdown changes.
func newMachineForm(m winding.Machine, a winding.PhaseAssigner, onChange func()) *machineForm {
	changed := func(string) {
		if onChange != nil {
			onChange()
		}
	}
	f := &machineForm{
		layer: newChoice("Winding", []string{"single", "double"},
			[]string{"Single-layer", "Double-layer"}, changed),
		pitch: newChoice("Pitch", []string{"full", "custom"},
			[]string{"Full-pitched", "Customised"}, changed),
		connection: newChoice("Connection", []string{"star", "delta"},
			[]string{"Star (Y)", "Triangle (Δ)"}, changed),
		assignment: newChoice("Phase belts", []string{"angle", "groups"},
			[]string{"Angle bands", "Pole groups"}, changed),
	}
	for _, ed := range []*widget.Editor{&f.phases, &f.slots, &f.poles, &f.offset} {
		ed.SingleLine = true
		ed.Submit = true
		ed.Filter = "-0123456789"
	}
	f.Set(m, a)
	return f
}

// Set shows m and a in the form.
func (f *machineForm) Set(m winding.Machine, a winding.PhaseAssigner) {
	f.phases.SetText(strconv.Itoa(m.Phases))
	f.slots.SetText(strconv.Itoa(m.Slots))
	f.poles.SetText(strconv.Itoa(m.Poles))
	f.offset.SetText(strconv.Itoa(m.Pitch.Offset))
	f.layer.Set(m.Layer.String())
	f.pitch.Set(m.Pitch.Kind.String())
	f.connection.Set(m.Connection.String())
	if a != nil {
		f.assignment.Set(winding.AssignerName(a))
	}
}

// Machine reads the form. The machine is not validated.
func (f *machineForm) Machine() (winding.Machine, winding.PhaseAssigner, error) {
	var m winding.Machine
	fields := []struct {
		name string
		ed   *widget.Editor
		dst  *int
	}{
		{"phases", &f.phases, &m.Phases},
		{"slots", &f.slots, &m.Slots},
		{"poles", &f.poles, &m.Poles},
	}
	for _, fd := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(fd.ed.Text()))
		if err != nil {
			return winding.Machine{}, nil, fmt.Errorf("%w: %s must be a whole number", winding.ErrInvalidSpec, fd.name)
		}
		*fd.dst = n
	}

	offset := 0
	if f.pitch.Value() == "custom" {
		n, err := strconv.Atoi(strings.TrimSpace(f.offset.Text()))
		if err != nil {
			return winding.Machine{}, nil, fmt.Errorf("%w: pitch offset must be a whole number", winding.ErrInvalidSpec)
		}
		offset = n
	}

	var err error
	if m.Layer, err = winding.ParseLayer(f.layer.Value()); err != nil {
		return winding.Machine{}, nil, err
	}
	if m.Pitch, err = winding.ParsePitch(f.pitch.Value(), offset); err != nil {
		return winding.Machine{}, nil, err
	}
	if m.Connection, err = winding.ParseConnection(f.connection.Value()); err != nil {
		return winding.Machine{}, nil, err
	}
	a, err := winding.ParseAssigner(f.assignment.Value())
	if err != nil {
		return winding.Machine{}, nil, err
	}
	return m, a, nil
}

// submitted reports whether Enter was pressed in any of the editors.
func (f *machineForm) submitted(gtx layout.Context) bool {
	hit := false
	for _, ed := range []*widget.Editor{&f.phases, &f.slots, &f.poles, &f.offset} {
		for {
			ev, ok := ed.Update(gtx)
			if !ok {
				break
			}
			if _, ok := ev.(widget.SubmitEvent); ok {
				hit = true
			}
		}
	}
	return hit
}

func (f *machineForm) Layout(gtx layout.Context, th *theme.Theme) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return numericField(gtx, th, "Phases (m)", &f.phases)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return numericField(gtx, th, "Slots (Z)", &f.slots)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return numericField(gtx, th, "Poles (2p)", &f.poles)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions { return f.layer.Layout(gtx, th) }),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions { return f.pitch.Layout(gtx, th) }),
	}
	if f.pitch.Value() == "custom" {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return numericField(gtx, th, "Pitch offset (k)", &f.offset)
		}))
	}
	children = append(children,
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions { return f.connection.Layout(gtx, th) }),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions { return f.assignment.Layout(gtx, th) }),
	)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func numericField(gtx layout.Context, th *theme.Theme, label string, editor *widget.Editor) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(material.Body2(th.Theme, label).Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(th.Theme, editor, "")
			ed.TextSize = unit.Sp(14)
			return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(6)}.Layout(gtx, ed.Layout)
		}),
	)
}
