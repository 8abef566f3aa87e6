package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/itihas/internal/lang"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported languages",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range lang.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-3s %s\n", l.Code, l.Label)
		}
	},
}
