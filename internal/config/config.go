// Package config collects the machine and rendering settings of the otw
// command from defaults, the environment (optionally seeded from a .env
// file) and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

// Environment variable names.
const (
	EnvPhases      = "OTW_PHASES"
	EnvSlots       = "OTW_SLOTS"
	EnvPoles       = "OTW_POLES"
	EnvLayer       = "OTW_LAYER"
	EnvPitch       = "OTW_PITCH"
	EnvPitchOffset = "OTW_PITCH_OFFSET"
	EnvConnection  = "OTW_CONNECTION"
	EnvAssignment  = "OTW_ASSIGNMENT"
	EnvWidth       = "OTW_WIDTH"
	EnvHeight      = "OTW_HEIGHT"
	EnvRows        = "OTW_ROWS"
)

// Config holds the raw settings. Words are parsed by the accessors so
// invalid values surface where they are used.
type Config struct {
	Phases      int
	Slots       int
	Poles       int
	Layer       string
	Pitch       string
	PitchOffset int
	Connection  string
	Assignment  string

	// Surface size in pixels; zero picks the view's default
	Width  int
	Height int

	Rows string
}

// Default returns the 24 slot, 4 pole, 3 phase double-layer reference.
func Default() Config {
	return Config{
		Phases:     3,
		Slots:      24,
		Poles:      4,
		Layer:      "double",
		Pitch:      "full",
		Connection: "star",
		Assignment: "angle",
		Rows:       "phase",
	}
}

// Load reads envFile into the process environment (or ./.env when envFile
// is empty and the file exists) and applies the OTW_* variables to the
// defaults. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	switch {
	case envFile != "":
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	default:
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return FromEnv(Default(), os.LookupEnv)
}

// FromEnv overlays the variables found by lookup on base.
func FromEnv(base Config, lookup func(string) (string, bool)) (Config, error) {
	cfg := base

	ints := []struct {
		key string
		dst *int
	}{
		{EnvPhases, &cfg.Phases},
		{EnvSlots, &cfg.Slots},
		{EnvPoles, &cfg.Poles},
		{EnvPitchOffset, &cfg.PitchOffset},
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
	}
	for _, v := range ints {
		s, ok := lookup(v.key)
		if !ok || s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s env variable %q", v.key, s)
		}
		*v.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{EnvLayer, &cfg.Layer},
		{EnvPitch, &cfg.Pitch},
		{EnvConnection, &cfg.Connection},
		{EnvAssignment, &cfg.Assignment},
		{EnvRows, &cfg.Rows},
	}
	for _, v := range strs {
		if s, ok := lookup(v.key); ok && s != "" {
			*v.dst = s
		}
	}

	// An offset on its own implies a custom pitch
	if _, ok := lookup(EnvPitch); !ok {
		if s, ok := lookup(EnvPitchOffset); ok && s != "" && cfg.PitchOffset != 0 {
			cfg.Pitch = "custom"
		}
	}
	return cfg, nil
}

// BindFlags registers the machine flags on fs with the current values as
// defaults, so flags given on the command line override everything else.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Phases, "phases", c.Phases, "Number of phases (m)")
	fs.IntVar(&c.Slots, "slots", c.Slots, "Number of stator slots (Z)")
	fs.IntVar(&c.Poles, "poles", c.Poles, "Number of poles (2p)")
	fs.StringVar(&c.Layer, "layer", c.Layer, "Winding type: single or double")
	fs.StringVar(&c.Pitch, "pitch", c.Pitch, "Coil pitch: full or custom")
	fs.IntVar(&c.PitchOffset, "pitch-offset", c.PitchOffset, "Pitch offset k in slots (custom pitch)")
	fs.StringVar(&c.Connection, "connection", c.Connection, "Connection: star or delta")
	fs.StringVar(&c.Assignment, "assignment", c.Assignment, "Phase assignment: angle or groups")
}

// BindRenderFlags registers the surface flags on fs.
func (c *Config) BindRenderFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "Surface width in pixels (0 = view default)")
	fs.IntVar(&c.Height, "height", c.Height, "Surface height in pixels (0 = view default)")
	fs.StringVar(&c.Rows, "rows", c.Rows, "Linear row policy: phase or sequential")
}

// Machine parses the settings into a machine. It does not validate the
// machine against the winding rules.
func (c Config) Machine() (winding.Machine, error) {
	layer, err := winding.ParseLayer(c.Layer)
	if err != nil {
		return winding.Machine{}, err
	}
	pitch, err := winding.ParsePitch(c.Pitch, c.PitchOffset)
	if err != nil {
		return winding.Machine{}, err
	}
	conn, err := winding.ParseConnection(c.Connection)
	if err != nil {
		return winding.Machine{}, err
	}
	return winding.Machine{
		Phases:     c.Phases,
		Slots:      c.Slots,
		Poles:      c.Poles,
		Layer:      layer,
		Pitch:      pitch,
		Connection: conn,
	}, nil
}

// Assigner returns the configured phase assignment.
func (c Config) Assigner() (winding.PhaseAssigner, error) {
	return winding.ParseAssigner(c.Assignment)
}

// RowPolicy returns the configured linear row policy.
func (c Config) RowPolicy() (render.RowPolicy, error) {
	return render.ParseRowPolicy(c.Rows)
}

// SetMachine copies m into the settings, as when a machine file overrides
// the flags.
func (c *Config) SetMachine(m winding.Machine, a winding.PhaseAssigner) {
	c.Phases = m.Phases
	c.Slots = m.Slots
	c.Poles = m.Poles
	c.Layer = m.Layer.String()
	c.Pitch = m.Pitch.Kind.String()
	c.PitchOffset = m.Pitch.Offset
	c.Connection = m.Connection.String()
	if a != nil {
		c.Assignment = winding.AssignerName(a)
	}
}

// Size returns the configured surface size, falling back to w x h.
func (c Config) Size(w, h int) (int, int) {
	if c.Width > 0 {
		w = c.Width
	}
	if c.Height > 0 {
		h = c.Height
	}
	return w, h
}

// Overlay applies the flags that were set on the command line in changed
// to c. Flags c does not know about are ignored.
func (c *Config) Overlay(changed *pflag.FlagSet) error {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	c.BindFlags(fs)
	c.BindRenderFlags(fs)

	var err error
	changed.Visit(func(f *pflag.Flag) {
		if err != nil || fs.Lookup(f.Name) == nil {
			return
		}
		if e := fs.Set(f.Name, f.Value.String()); e != nil {
			err = fmt.Errorf("invalid --%s: %w", f.Name, e)
		}
	})
	if err != nil {
		return err
	}
	if changed.Changed("pitch-offset") && !changed.Changed("pitch") && c.PitchOffset != 0 {
		c.Pitch = "custom"
	}
	return nil
}
