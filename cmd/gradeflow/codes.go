package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/gradeflow/gradeflow/internal/cli"
	"github.com/gradeflow/gradeflow/internal/idcode"
)

func codesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Generate a printable identity code",
		Long: `Renders an identity code as a PNG for placement on a worksheet. Codes
are read back by the corner-first decoder during the identification pass.

Version 1 embeds student+question, version 2 student only, version 3
student+page.`,
		RunE: runCodes,
	}

	cmd.Flags().String("student", "", "student reference to embed (required)")
	_ = cmd.MarkFlagRequired("student")
	cmd.Flags().String("question", "", "question id (v1 codes)")
	cmd.Flags().Int("page", 0, "page number (v3 codes)")
	cmd.Flags().Int("total-pages", 0, "total pages (v3 codes)")
	cmd.Flags().Int("size", 240, "side length of the generated PNG in pixels")
	cmd.Flags().StringP("output", "o", "code.png", "output file")

	return cmd
}

func runCodes(cmd *cobra.Command, _ []string) error {
	student, _ := cmd.Flags().GetString("student")
	question, _ := cmd.Flags().GetString("question")
	page, _ := cmd.Flags().GetInt("page")
	totalPages, _ := cmd.Flags().GetInt("total-pages")
	size, _ := cmd.Flags().GetInt("size")
	output, _ := cmd.Flags().GetString("output")

	payload := idcode.Payload{StudentRef: student}
	switch {
	case question != "":
		payload.Version = 1
		payload.QuestionID = question
	case page > 0:
		payload.Version = 3
		payload.Type = idcode.TypeStudentPage
		payload.Page = page
		payload.TotalPages = totalPages
	default:
		payload.Version = 2
		payload.Type = idcode.TypeStudent
	}

	img, err := idcode.EncodeImage(payload, size)
	if err != nil {
		return err
	}

	file, err := os.Create(output) // #nosec G304 -- user-supplied output path
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to write PNG: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("%s Wrote %s (v%d code)", cli.SuccessIcon, output, payload.Version)))
	return nil
}
