package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/report"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate winding figures and the coil table",
	Long: `Calculate the winding figures, factors and coil connections of a machine
and print them with the machine summary.

Examples:
  otw calc
  otw calc --slots 36 --poles 6 --layer single
  otw calc --pitch custom --pitch-offset 1`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	d, _, err := design()
	if err != nil {
		return err
	}
	return report.WriteDesign(os.Stdout, d)
}
