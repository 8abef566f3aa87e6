package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/lang"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <topic>",
	Short: "Summarize the best-matching article for a topic",
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

		res, err := env.engine.Summarize(ctx, title, env.language.Code)
		if err != nil {
			return userError(err)
		}

		con.heading(res.Title + " (" + lang.LabelFor(res.Requested) + ")")
		con.printf("%s\n\n", res.Text)
		con.warnings(res.Warnings)
		con.line(env.services().SaveAudio(res.Title+" summary", res.Audio))
		return nil
	},
}

func init() {
	summaryCmd.Flags().Bool("first", false, "Use the top-ranked article without prompting")
}

// resolveTitle searches for topic and lets the learner pick an article.
func resolveTitle(ctx context.Context, env *appEnv, con *console, topic string, first bool) (string, error) {
	cands, err := env.engine.Candidates(ctx, topic)
	if err != nil {
		return "", userError(err)
	}
	return con.chooseTitle(cands, first)
}
