package cmd

import (
	"encoding/json"
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papersmith/papersmith/internal/llm"
	"github.com/papersmith/papersmith/internal/paper"
	"github.com/papersmith/papersmith/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one question paper and print it",
	Long: `Generates a question paper from a syllabus file using the configured provider.
The paper is rendered for the terminal, or printed as JSON with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		width, _ := cmd.Flags().GetInt("width")

		req, err := readRequest(cmd)
		if err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			logger.Error("invalid configuration", zap.Error(err))
			return err
		}

		ctx := cmd.Context()
		repo, closeLedger, err := openLedger()
		if err != nil {
			return err
		}
		defer closeLedger()

		provider, err := llm.NewProvider(ctx, cfg.LLM, logger.Named("llm"), repo)
		if err != nil {
			return err
		}

		gen := paper.New(provider, cfg.PaperConfig(), logger.Named("paper"))
		qp, err := gen.Generate(llm.WithPurpose(ctx, "cli-generate"), req)
		if err != nil {
			return fmt.Errorf("%s: %w", paper.Classify(err), err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(qp)
		}
		_, err = lipgloss.Fprintln(out, render.Paper(qp, req.SubjectName, width))
		return err
	},
}

func init() {
	addSyllabusFlags(generateCmd)
	generateCmd.Flags().Bool("json", false, "Print the paper as JSON")
	generateCmd.Flags().Int("width", 80, "Wrap width for the rendered paper")
}
