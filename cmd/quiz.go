package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Take a multiple-choice quiz built from an article",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		first, _ := cmd.Flags().GetBool("first")

		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		con := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())

		title, err := resolveTitle(ctx, env, con, strings.Join(args, " "), first)
		if err != nil {
			return err
		}

		con.printf("Building a quiz about %s...\n\n", title)
		res, err := env.engine.StartQuiz(ctx, env.learner, title, env.language.Code)
		if err != nil {
			return userError(err)
		}
		con.warnings(res.Warnings)

		if _, err := con.runQuiz(ctx, env.learner); err != nil {
			return err
		}

		sum := session.BuildSummary(env.learner.Session())
		con.printf("\n")
		con.heading("Summary: " + sum.Result + " correct")
		con.printf("Accuracy: %.0f%%\n", sum.Accuracy*100)
		if results := env.learner.History().Results(sum.Topic); len(results) > 1 {
			con.printf("Your scores for %s: %s\n", sum.Topic, strings.Join(results, ", "))
		}
		return env.learner.Reset()
	},
}

func init() {
	quizCmd.Flags().Bool("first", false, "Use the top-ranked article without prompting")
}
