package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papersmith/papersmith/internal/paper"
)

func addSyllabusFlags(c *cobra.Command) {
	c.Flags().StringP("syllabus", "s", "", `Syllabus text file ("-" reads stdin)`)
	c.Flags().String("subject", "", "Subject name shown in the prompt")
	_ = c.MarkFlagRequired("syllabus")
}

// readRequest builds a paper.Request from the --syllabus and --subject flags.
func readRequest(cmd *cobra.Command) (paper.Request, error) {
	path, _ := cmd.Flags().GetString("syllabus")
	subject, _ := cmd.Flags().GetString("subject")

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return paper.Request{}, fmt.Errorf("read syllabus: %w", err)
	}

	return paper.Request{SubjectName: subject, SyllabusText: string(data)}, nil
}
