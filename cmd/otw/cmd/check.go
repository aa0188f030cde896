package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceWinding/pkg/machinefile"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/winding"
)

var checkCmd = &cobra.Command{
	Use:   "check <machine-file>",
	Short: "Parse and validate a machine file",
	Long: `Parse a machine description file and validate every machine in it
against the winding rules.

Examples:
  otw check stators.wnd`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	entries, err := machinefile.Load(args[0])
	if err != nil {
		return err
	}

	failed := 0
	for _, e := range entries {
		d, err := winding.NewDesignWith(e.Machine, e.Assigner)
		if err != nil {
			failed++
			fmt.Printf("%-16s %s  FAIL  %v\n", e.Name, e.Pos, err)
			continue
		}
		f := d.Figures.Format()
		fmt.Printf("%-16s %s  ok    Z=%d 2p=%d m=%d q=%s y=%s kw=%s\n",
			e.Name, e.Pos, e.Machine.Slots, e.Machine.Poles, e.Machine.Phases, f.Q, f.Y, f.Kw)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d machines invalid", failed, len(entries))
	}
	return nil
}
