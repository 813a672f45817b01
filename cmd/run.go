package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/braincourse/internal/app"
)

// runApp builds dependencies and launches the TUI for the selected user.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, envOptions{TUI: true})
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.me(cmd.Context())
	if err != nil {
		return err
	}
	if p.Student() == nil {
		return errTeacherTUI
	}

	e.log.Info("tui started", "user", p.ID)
	return app.Run(e.svc, p.ID, e.llmErr == nil)
}
