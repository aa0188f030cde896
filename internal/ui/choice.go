package ui

import (
	"strings"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
)

// choice is a labelled dropdown over a fixed list of values.
type choice struct {
	label    string
	values   []string
	names    []string
	selected int

	btn      widget.Clickable
	menu     *menu.DropdownMenu
	onChange func(value string)
}

// newChoice builds the dropdown. names are the display names of values;
// nil shows the values themselves.
func newChoice(label string, values, names []string, onChange func(string)) *choice {
	if names == nil {
		names = values
	}
	c := &choice{label: label, values: values, names: names, onChange: onChange}

	opts := make([]menu.MenuOption, 0, len(values))
	for i := range values {
		idx := i
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				c.pick(idx)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, c.names[idx])
				if idx == c.selected {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	c.menu = menu.NewDropdownMenu([][]menu.MenuOption{opts})
	c.menu.MaxWidth = unit.Dp(200)
	return c
}

func (c *choice) pick(idx int) {
	if idx == c.selected {
		return
	}
	c.selected = idx
	if c.onChange != nil {
		c.onChange(c.values[idx])
	}
}

// Value returns the selected value.
func (c *choice) Value() string {
	return c.values[c.selected]
}

// Set selects value, compared case-insensitively, without calling
// onChange. It reports whether value is one of the choices.
func (c *choice) Set(value string) bool {
	for i, v := range c.values {
		if strings.EqualFold(v, value) {
			c.selected = i
			return true
		}
	}
	return false
}

func (c *choice) Layout(gtx layout.Context, th *theme.Theme) layout.Dimensions {
	if c.btn.Clicked(gtx) {
		c.menu.ToggleVisibility(gtx)
	}
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Flexed(1, material.Body2(th.Theme, c.label).Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(th.Theme, &c.btn, c.names[c.selected])
			btn.Inset = layout.UniformInset(unit.Dp(6))
			dims := btn.Layout(gtx)

			// Layout menu after button so it appears on top
			c.menu.Layout(gtx, th)
			return dims
		}),
	)
}
