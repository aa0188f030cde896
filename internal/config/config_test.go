package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestDefaultIsReferenceMachine(t *testing.T) {
	m, err := Default().Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if m != winding.DefaultMachine() {
		t.Errorf("got %+v, want %+v", m, winding.DefaultMachine())
	}
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(Default(), lookupFrom(map[string]string{
		EnvSlots:      "36",
		EnvPoles:      "6",
		EnvLayer:      "single",
		EnvConnection: "delta",
		EnvWidth:      "800",
		EnvRows:       "sequential",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Slots != 36 || cfg.Poles != 6 || cfg.Phases != 3 {
		t.Errorf("numbers: got %+v", cfg)
	}
	m, err := cfg.Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if m.Layer != winding.SingleLayer || m.Connection != winding.Delta {
		t.Errorf("words: got %+v", m)
	}
	if w, h := cfg.Size(1000, 420); w != 800 || h != 420 {
		t.Errorf("Size: got %dx%d, want 800x420", w, h)
	}
	rows, err := cfg.RowPolicy()
	if err != nil {
		t.Fatalf("RowPolicy: %v", err)
	}
	if _, ok := rows.(render.SequentialRows); !ok {
		t.Errorf("got %T, want SequentialRows", rows)
	}
}

func TestFromEnvOffsetImpliesCustom(t *testing.T) {
	cfg, err := FromEnv(Default(), lookupFrom(map[string]string{EnvPitchOffset: "1"}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	m, err := cfg.Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if m.Pitch != (winding.Pitch{Kind: winding.CustomPitch, Offset: 1}) {
		t.Errorf("got %+v", m.Pitch)
	}

	cfg, _ = FromEnv(Default(), lookupFrom(map[string]string{EnvPitchOffset: "1", EnvPitch: "full"}))
	if m, _ := cfg.Machine(); m.Pitch.K() != 0 {
		t.Errorf("explicit full pitch should ignore the offset, got k=%d", m.Pitch.K())
	}
}

func TestFromEnvRejectsBadNumber(t *testing.T) {
	_, err := FromEnv(Default(), lookupFrom(map[string]string{EnvPoles: "four"}))
	if err == nil || !strings.Contains(err.Error(), EnvPoles) {
		t.Errorf("error should name %s, got %v", EnvPoles, err)
	}
}

func TestMachineRejectsBadWords(t *testing.T) {
	tests := []func(*Config){
		func(c *Config) { c.Layer = "triple" },
		func(c *Config) { c.Pitch = "long" },
		func(c *Config) { c.Connection = "zigzag" },
	}
	for i, mutate := range tests {
		cfg := Default()
		mutate(&cfg)
		if _, err := cfg.Machine(); !errors.Is(err, winding.ErrInvalidSpec) {
			t.Errorf("case %d: got %v, want ErrInvalidSpec", i, err)
		}
	}
	cfg := Default()
	cfg.Assignment = "dice"
	if _, err := cfg.Assigner(); err == nil {
		t.Errorf("expected an error for an unknown assignment")
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	cfg, err := FromEnv(Default(), lookupFrom(map[string]string{EnvSlots: "48", EnvPoles: "8"}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	cfg.BindRenderFlags(fs)
	if err := fs.Parse([]string{"--slots", "36", "--pitch", "custom", "--pitch-offset", "1", "--height", "300"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Slots != 36 {
		t.Errorf("flag should win: got %d slots", cfg.Slots)
	}
	if cfg.Poles != 8 {
		t.Errorf("env should survive: got %d poles", cfg.Poles)
	}
	if cfg.Height != 300 {
		t.Errorf("got height %d, want 300", cfg.Height)
	}
	m, err := cfg.Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if m.Pitch.K() != 1 {
		t.Errorf("got k=%d, want 1", m.Pitch.K())
	}
}

func TestSetMachineRoundTrip(t *testing.T) {
	want := winding.Machine{
		Phases:     3,
		Slots:      36,
		Poles:      6,
		Layer:      winding.SingleLayer,
		Pitch:      winding.Pitch{Kind: winding.CustomPitch, Offset: 1},
		Connection: winding.Delta,
	}
	cfg := Default()
	cfg.SetMachine(want, winding.PoleGroups{})
	got, err := cfg.Machine()
	if err != nil {
		t.Fatalf("Machine: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if cfg.Assignment != "groups" {
		t.Errorf("got assignment %q", cfg.Assignment)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winding.env")
	content := "OTW_SLOTS=72\nOTW_POLES=8\n# comment\nOTW_LAYER=single\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Cleanup(func() {
		for _, k := range []string{EnvSlots, EnvPoles, EnvLayer} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Slots != 72 || cfg.Poles != 8 || cfg.Layer != "single" {
		t.Errorf("got %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Errorf("expected an error for a missing env file")
	}
}

func TestLoadPrefersProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winding.env")
	if err := os.WriteFile(path, []byte("OTW_PHASES=5\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvPhases, "2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Phases != 2 {
		t.Errorf("got %d phases, want the process value 2", cfg.Phases)
	}
}

func TestOverlayKeepsUnsetFlags(t *testing.T) {
	cfg, err := FromEnv(Default(), lookupFrom(map[string]string{EnvSlots: "48", EnvPoles: "8", EnvLayer: "single"}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	flags := Default()
	fs := pflag.NewFlagSet("cmd", pflag.ContinueOnError)
	flags.BindFlags(fs)
	fs.Bool("verbose", false, "")
	if err := fs.Parse([]string{"--poles", "4", "--pitch-offset", "2", "--verbose"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cfg.Overlay(fs); err != nil {
		t.Fatalf("Overlay: %v", err)
	}

	if cfg.Slots != 48 || cfg.Layer != "single" {
		t.Errorf("env values lost: %+v", cfg)
	}
	if cfg.Poles != 4 {
		t.Errorf("got %d poles, want the flag value 4", cfg.Poles)
	}
	if cfg.Pitch != "custom" || cfg.PitchOffset != 2 {
		t.Errorf("got pitch %s %d, want custom 2", cfg.Pitch, cfg.PitchOffset)
	}
}
