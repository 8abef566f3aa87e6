package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/lang"
	"github.com/abhisek/itihas/internal/story"
)

var storyCmd = &cobra.Command{
	Use:   "story [figure]",
	Short: "Tell a children's story about a historical figure",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if list, _ := cmd.Flags().GetBool("list"); list || len(args) == 0 {
			printCatalog(out)
			return nil
		}

		bandName, _ := cmd.Flags().GetString("band")
		band, err := story.LookupBand(bandName)
		if err != nil {
			return err
		}

		subject := strings.Join(args, " ")
		epithet, _ := cmd.Flags().GetString("epithet")
		if epithet == "" {
			fig, ok := story.FindFigure(subject)
			if !ok {
				return fmt.Errorf("%q is not in the story catalog; pass --epithet to describe them", subject)
			}
			epithet = fig.Epithet
		}

		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		con := newConsole(cmd.InOrStdin(), out)
		res, err := env.engine.Story(cmd.Context(), subject, epithet, band, env.language.Code)
		if err != nil {
			return userError(err)
		}

		con.warnings(res.Warnings)
		for i, p := range res.Story.Paragraphs {
			if i == 0 {
				con.heading(p)
				continue
			}
			con.printf("%s\n\n", p)
		}
		if res.ImageURL != "" {
			con.printf("Image: %s\n", res.ImageURL)
		} else {
			con.printf("We couldn't find a suitable image for %s.\n", subject)
		}
		con.line(env.services().SaveAudio(subject+" story", res.Audio))
		if res.FellBack {
			con.printf("(told in %s)\n", lang.LabelFor(res.Effective))
		}
		return nil
	},
}

func init() {
	storyCmd.Flags().StringP("band", "b", "9-12 years", "Age band: 5-8 years, 9-12 years or 13+ years")
	storyCmd.Flags().String("epithet", "", "Short description of the figure (defaults to the catalog entry)")
	storyCmd.Flags().Bool("list", false, "List the story catalog")
}

func printCatalog(w io.Writer) {
	for _, cat := range story.Categories() {
		fmt.Fprintln(w, cat)
		figs, _ := story.Figures(cat)
		for _, f := range figs {
			fmt.Fprintf(w, "  %-22s %s\n", f.Name, f.Epithet)
		}
	}
}
