package ui

import (
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
)

// Run launches the Gio UI and blocks until the window closes.
func Run(opts Options) error {
	if opts.State == nil {
		opts.State = NewState()
	}
	log := slog.New(newLogHandler(opts.State, slog.Default().Handler())).With("component", "ui")

	go func() {
		w := new(app.Window)
		w.Option(app.Title("OpenTraceWinding"), app.Size(unit.Dp(1400), unit.Dp(860)))
		log.Info("window opened", "slots", opts.Machine.Slots, "poles", opts.Machine.Poles)
		ui := New(w, opts, log)
		if err := ui.Run(); err != nil {
			log.Error("window closed", "error", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
