package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papersmith/papersmith/internal/paper"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the generation prompt without calling a provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(cmd)
		if err != nil {
			return err
		}

		prompt, err := paper.BuildPrompt(req, cfg.PaperConfig())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	},
}

func init() {
	addSyllabusFlags(promptCmd)
}
