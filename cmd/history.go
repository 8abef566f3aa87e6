package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [topic]",
	Short: "Show past quiz scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.ResultRepo().History(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No quizzes taken yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-40s  %s\n", "Completed", "Topic", "Score")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, r := range results {
			fmt.Fprintf(out, "%-19s  %-40s  %s\n",
				r.CompletedAt.Local().Format("2006-01-02 15:04:05"), truncate(r.Topic, 40), r.Display())
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "Show only the newest N results (0 = all)")
}
