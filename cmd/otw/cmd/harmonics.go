package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/report"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

var (
	harmonicOrder int
	chartPath     string
)

var harmonicsCmd = &cobra.Command{
	Use:   "harmonics",
	Short: "Show harmonic winding factors",
	Long: `Print the pitch, distribution and winding factors of the odd space
harmonics up to --order, optionally charting them. The chart format follows
the file extension: .html (interactive), .png or .svg.

Examples:
  otw harmonics
  otw harmonics --order 25 --pitch custom --pitch-offset 1
  otw harmonics --chart kw.html`,
	Args: cobra.NoArgs,
	RunE: runHarmonics,
}

func init() {
	rootCmd.AddCommand(harmonicsCmd)

	harmonicsCmd.Flags().IntVarP(&harmonicOrder, "order", "n", 13, "highest harmonic order")
	harmonicsCmd.Flags().StringVar(&chartPath, "chart", "", "write a chart of the factors to this file")
}

func runHarmonics(cmd *cobra.Command, args []string) error {
	m, _, err := machine()
	if err != nil {
		return err
	}
	hs, err := winding.Harmonics(m, harmonicOrder)
	if err != nil {
		return fmt.Errorf("invalid machine: %w", err)
	}
	if err := report.WriteHarmonics(os.Stdout, hs); err != nil {
		return err
	}
	if chartPath == "" {
		return nil
	}

	format, err := report.ChartFormatFor(chartPath)
	if err != nil {
		return err
	}
	w, closeFn, err := output(chartPath)
	if err != nil {
		return err
	}
	if err := report.WriteHarmonicsChart(w, format, m, hs); err != nil {
		closeFn()
		return fmt.Errorf("failed to write chart: %w", err)
	}
	if err := closeFn(); err != nil {
		return err
	}
	slog.Info("chart written", "path", chartPath, "format", format)
	return nil
}
