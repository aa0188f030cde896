package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWinding/internal/config"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/machinefile"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

var (
	// Global flags
	verbose     bool
	envFile     string
	machineFile string
	machineName string

	// settings is resolved before every command runs
	settings config.Config
	flagCfg  = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "otw",
	Short: "OpenTraceWinding - stator winding designer",
	Long: `OpenTraceWinding (otw) lays out distributed three-phase stator windings:
  - winding figures (q, τ, y, α) and the pitch, distribution and winding factors
  - phase belts and coil connections for single and double layer windings
  - circular and linear winding diagrams as SVG, PNG or an interactive window

Machine settings come from defaults, OTW_* environment variables (also read
from a .env file), command line flags and finally a machine file, each
overriding the previous one.

Examples:
  otw calc --slots 36 --poles 6                 # Figures and coil table
  otw render --view linear --out winding.svg    # Export the linear diagram
  otw harmonics --order 13 --chart kw.html      # Harmonic winding factors
  otw ui --file stators.wnd --machine small     # Interactive viewer`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: resolveSettings,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&envFile, "env-file", "", "load OTW_* variables from this file (default ./.env if present)")
	pf.StringVarP(&machineFile, "file", "f", "", "machine description file (.wnd)")
	pf.StringVarP(&machineName, "machine", "m", "", "machine to use from --file (default: the first)")
	flagCfg.BindFlags(pf)
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func resolveSettings(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := cfg.Overlay(cmd.Flags()); err != nil {
		return err
	}
	if machineFile != "" {
		entries, err := machinefile.Load(machineFile)
		if err != nil {
			return err
		}
		e, err := machinefile.Pick(entries, machineName)
		if err != nil {
			return fmt.Errorf("%s: %w", machineFile, err)
		}
		cfg.SetMachine(e.Machine, e.Assigner)
		slog.Debug("machine loaded", "file", machineFile, "machine", e.Name, "pos", e.Pos.String())
	}
	settings = cfg
	return nil
}

// machine returns the resolved machine and phase assignment.
func machine() (winding.Machine, winding.PhaseAssigner, error) {
	m, err := settings.Machine()
	if err != nil {
		return winding.Machine{}, nil, err
	}
	a, err := settings.Assigner()
	if err != nil {
		return winding.Machine{}, nil, err
	}
	return m, a, nil
}

// design resolves the machine and calculates it.
func design() (*winding.Design, winding.PhaseAssigner, error) {
	m, a, err := machine()
	if err != nil {
		return nil, nil, err
	}
	d, err := winding.NewDesignWith(m, a)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid machine: %w", err)
	}
	slog.Debug("design calculated", "slots", m.Slots, "poles", m.Poles, "coils", len(d.Coils))
	return d, a, nil
}

// output opens path for writing; "" and "-" mean stdout.
func output(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
