package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "itihas",
	Short: "Stories, summaries and quizzes from Indian history",
	Long: "Itihas — a terminal app that turns encyclopedia articles about Indian history into " +
		"summaries, quizzes, children's stories and sloka translations in six Indian languages.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ITIHAS_DB env var)")
	rootCmd.PersistentFlags().StringP("lang", "l", "", "Preferred language, by label or code (default from ITIHAS_DEFAULT_LANGUAGE)")
	rootCmd.PersistentFlags().String("audio-dir", "", "Directory for narrated audio files (default: next to the database)")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(slokaCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ITIHAS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
