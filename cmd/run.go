package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer env.Close()

	env.log.Info("starting tui", "lang", env.language.Code, "audio_dir", env.audioDir)

	return app.Run(env.services())
}
