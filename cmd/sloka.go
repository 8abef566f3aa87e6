package cmd

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/lang"
)

var slokaCmd = &cobra.Command{
	Use:   "sloka [verse]",
	Short: "Translate and narrate a Sanskrit verse",
	Long:  "Translate a Sanskrit verse into the preferred language. With no argument the verse is read from stdin.",
	RunE: func(cmd *cobra.Command, args []string) error {
		verse := strings.Join(args, " ")
		if verse == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			verse = strings.TrimSpace(string(data))
		}
		if verse == "" {
			return errors.New("please enter a sloka to translate")
		}

		env, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer env.Close()

		con := newConsole(cmd.InOrStdin(), cmd.OutOrStdout())
		res, err := env.engine.Sloka(cmd.Context(), verse, env.language.Code)
		if err != nil {
			return userError(err)
		}

		con.heading("Sloka")
		con.printf("%s\n\n", res.Verse)
		con.heading("Meaning (" + lang.LabelFor(res.Language) + ")")
		con.printf("%s\n\n", res.Meaning)
		con.warnings(res.Warnings)

		svc := env.services()
		con.line(svc.SaveAudio("sloka recitation", res.Pronunciation))
		con.line(svc.SaveAudio("sloka meaning", res.MeaningAudio))
		return nil
	},
}
