package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gradeflow/gradeflow/internal/cli"
	"github.com/gradeflow/gradeflow/internal/model"
)

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the class roster",
	}

	cmd.AddCommand(rosterImportCmd())
	cmd.AddCommand(rosterListCmd())

	return cmd
}

func rosterImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <roster.csv>",
		Short: "Import students from a CSV file",
		Long: `Imports roster entries from a CSV with columns:

    first_name,last_name,external_student_id

A header row is detected and skipped. Existing students (matched by
external id) are updated in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			file, err := os.Open(args[0]) // #nosec G304 -- user-supplied roster path
			if err != nil {
				return fmt.Errorf("failed to open roster file: %w", err)
			}
			defer func() { _ = file.Close() }()

			records, err := csv.NewReader(file).ReadAll()
			if err != nil {
				return fmt.Errorf("failed to parse roster CSV: %w", err)
			}

			existing, err := store.ListStudents(ctx)
			if err != nil {
				return err
			}
			byExternalID := make(map[string]string, len(existing))
			for _, s := range existing {
				if s.ExternalStudentID != "" {
					byExternalID[s.ExternalStudentID] = s.ID
				}
			}

			imported := 0
			for i, record := range records {
				if len(record) < 3 {
					return fmt.Errorf("roster row %d has %d columns, want 3", i+1, len(record))
				}
				if i == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "first_name") {
					continue // header row
				}

				student := model.Student{
					FirstName:         strings.TrimSpace(record[0]),
					LastName:          strings.TrimSpace(record[1]),
					ExternalStudentID: strings.TrimSpace(record[2]),
				}
				if id, ok := byExternalID[student.ExternalStudentID]; ok && student.ExternalStudentID != "" {
					student.ID = id
				} else {
					student.ID = uuid.NewString()
				}

				if err := store.SaveStudent(ctx, &student); err != nil {
					return err
				}
				imported++
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("%s Imported %d students", cli.SuccessIcon, imported)))
			return nil
		},
	}
}

func rosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the class roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			students, err := store.ListStudents(ctx)
			if err != nil {
				return err
			}

			if len(students) == 0 {
				fmt.Println(cli.SubtleStyle.Render("roster is empty"))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Roster (%d students)", len(students))))
			for _, s := range students {
				line := fmt.Sprintf("  %-30s %s", s.FullName(), cli.SubtleStyle.Render(s.ExternalStudentID))
				fmt.Println(line)
			}
			return nil
		},
	}
}
