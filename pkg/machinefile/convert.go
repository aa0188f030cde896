package machinefile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// ErrInvalidField is returned for unknown, duplicate, missing or mistyped
// fields.
var ErrInvalidField = errors.New("machinefile: invalid field")

// Entry is a machine block converted to the winding model.
type Entry struct {
	Name     string
	Pos      lexer.Position
	Machine  winding.Machine
	Assigner winding.PhaseAssigner
}

// Entries converts every machine block in f.
func (f *File) Entries() ([]Entry, error) {
	out := make([]Entry, 0, len(f.Machines))
	seen := make(map[string]lexer.Position)
	for _, decl := range f.Machines {
		if prev, ok := seen[decl.Name]; ok {
			return nil, fmt.Errorf("%s: %w: machine %q already declared at %s", decl.Pos, ErrInvalidField, decl.Name, prev)
		}
		seen[decl.Name] = decl.Pos

		e, err := decl.Entry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Entry converts the block. Only slots and poles are required; phases
// default to 3, layer to double, pitch to full and connection to star.
// The machine is not validated against the winding rules.
func (d *MachineDecl) Entry() (Entry, error) {
	m := winding.Machine{
		Phases:     3,
		Layer:      winding.DoubleLayer,
		Pitch:      winding.Pitch{Kind: winding.FullPitch},
		Connection: winding.Star,
	}
	e := Entry{Name: d.Name, Pos: d.Pos, Assigner: winding.AngleBands{}}

	set := make(map[string]bool)
	for _, f := range d.Fields {
		key := strings.ToLower(f.Key)
		if set[key] {
			return Entry{}, fieldError(f, "duplicate field")
		}
		set[key] = true

		var err error
		switch key {
		case "slots":
			m.Slots, err = f.number()
		case "poles":
			m.Poles, err = f.number()
		case "phases":
			m.Phases, err = f.number()
		case "layer":
			var w string
			if w, err = f.word(); err == nil {
				m.Layer, err = winding.ParseLayer(w)
			}
		case "connection":
			var w string
			if w, err = f.word(); err == nil {
				m.Connection, err = winding.ParseConnection(w)
			}
		case "pitch":
			m.Pitch, err = f.pitch()
		case "assignment":
			var w string
			if w, err = f.word(); err == nil {
				e.Assigner, err = winding.ParseAssigner(w)
			}
		default:
			return Entry{}, fieldError(f, "unknown field")
		}
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %s: %w", f.Pos, f.Key, err)
		}
	}

	for _, required := range []string{"slots", "poles"} {
		if !set[required] {
			return Entry{}, fmt.Errorf("%s: %w: machine %q has no %s", d.Pos, ErrInvalidField, d.Name, required)
		}
	}

	e.Machine = m
	return e, nil
}

func (f *Field) number() (int, error) {
	if f.Value.Number == nil {
		return 0, fmt.Errorf("%w: expected a number, got %q", ErrInvalidField, f.Value)
	}
	return *f.Value.Number, nil
}

func (f *Field) word() (string, error) {
	if f.Value.Word == nil || f.Value.Arg != nil {
		return "", fmt.Errorf("%w: expected a word, got %q", ErrInvalidField, f.Value)
	}
	return *f.Value.Word, nil
}

// pitch accepts "full", "custom N" or a bare offset N.
func (f *Field) pitch() (winding.Pitch, error) {
	v := f.Value
	switch {
	case v.Number != nil:
		return winding.Pitch{Kind: winding.CustomPitch, Offset: *v.Number}, nil
	case v.Word != nil:
		offset := 0
		if v.Arg != nil {
			offset = *v.Arg
		}
		p, err := winding.ParsePitch(*v.Word, offset)
		if err != nil {
			return winding.Pitch{}, err
		}
		if p.Kind == winding.CustomPitch && v.Arg == nil {
			return winding.Pitch{}, fmt.Errorf("%w: custom pitch needs an offset", ErrInvalidField)
		}
		if p.Kind == winding.FullPitch && v.Arg != nil {
			return winding.Pitch{}, fmt.Errorf("%w: full pitch takes no offset", ErrInvalidField)
		}
		return p, nil
	}
	return winding.Pitch{}, fmt.Errorf("%w: missing pitch", ErrInvalidField)
}

func fieldError(f *Field, msg string) error {
	return fmt.Errorf("%s: %w: %s %q", f.Pos, ErrInvalidField, msg, f.Key)
}

// Load parses path and converts every machine in it.
func Load(path string) ([]Entry, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := f.Entries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w: no machine declared", path, ErrInvalidField)
	}
	return entries, nil
}

// Pick returns the entry called name, or the first entry when name is
// empty.
func Pick(entries []Entry, name string) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: no machine declared", ErrInvalidField)
	}
	if name == "" {
		return entries[0], nil
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: no machine named %q", ErrInvalidField, name)
}
