package cmd

import (
	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/OpenTraceWinding/internal/ui"
	"github.com/OpenTraceLab/OpenTraceWinding/pkg/render"
)

var uiTheme string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive viewer",
	Long: `Launch the winding viewer: edit the machine, inspect the figures and the
coil table, click coils on the circular view and pan or zoom the linear view.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, a, err := machine()
		if err != nil {
			return err
		}
		opts := render.DefaultOptions()
		if opts.Theme, err = render.ParseTheme(uiTheme); err != nil {
			return err
		}
		if opts.Rows, err = settings.RowPolicy(); err != nil {
			return err
		}
		return appui.Run(appui.Options{Machine: m, Assigner: a, Render: opts})
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().StringVar(&uiTheme, "theme", "light", "palette: light or dark")
}
