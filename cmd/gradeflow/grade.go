package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gradeflow/gradeflow/internal/batch"
	"github.com/gradeflow/gradeflow/internal/cli"
	"github.com/gradeflow/gradeflow/internal/config"
	"github.com/gradeflow/gradeflow/internal/idcode"
	"github.com/gradeflow/gradeflow/internal/identify"
	"github.com/gradeflow/gradeflow/internal/summary"
)

// imageExtensions lists the scan formats the grade command picks up.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

func gradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade <scan-directory>",
		Short: "Identify and grade a directory of scanned work",
		Long: `Loads every image in the directory into a batch, resolves each page to a
student on the roster, grades each page against the rubric, and prints a
per-item breakdown plus class statistics.

Failed items are reported individually and never abort the batch; fix the
scans or reassign students and run the batch again.`,
		Args: cobra.ExactArgs(1),
		RunE: runGrade,
	}

	cmd.Flags().String("rubric", "", "path to the rubric JSON file (required)")
	_ = cmd.MarkFlagRequired("rubric")
	cmd.Flags().Bool("skip-identify", false, "skip the identification pass (pages already assigned)")

	return cmd
}

func runGrade(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rubricPath, _ := cmd.Flags().GetString("rubric")
	rubric, err := config.LoadRubric(rubricPath)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	roster, err := store.ListStudents(ctx)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		return fmt.Errorf("roster is empty; import students first with 'gradeflow roster import'")
	}

	client, err := initScanClient()
	if err != nil {
		return err
	}

	reporter := &progressReporter{}
	resolver := identify.NewResolver(idcode.NewDecoder(), client, slog.Default())
	queue := batch.NewQueue(resolver, client,
		batch.WithProgressFunc(reporter.report),
		batch.WithLogger(slog.Default()))

	added, err := loadScans(queue, args[0])
	if err != nil {
		return err
	}
	if added == 0 {
		return fmt.Errorf("no scan images found in %s", args[0])
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Grading %d scanned pages", added)))

	if skip, _ := cmd.Flags().GetBool("skip-identify"); !skip {
		if err := queue.RunIdentification(ctx, roster); err != nil {
			return err
		}
		reporter.finish()
	}

	if err := queue.RunAnalysis(ctx, rubric); err != nil {
		return err
	}
	reporter.finish()

	items := queue.Items()
	fmt.Println()
	for _, item := range items {
		fmt.Println(cli.FormatItemLine(item))
	}

	fmt.Println()
	fmt.Println(cli.RenderSummary(summary.Summarize(items)))

	slog.Info("grading run finished", "items", len(items))
	return nil
}

// loadScans adds every image in dir to the queue in filename order, so
// queue order is stable across runs.
func loadScans(queue *batch.Queue, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read scan directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304 -- user-supplied scan directory
		if err != nil {
			return 0, fmt.Errorf("failed to read scan %s: %w", name, err)
		}
		queue.Add(data, "", "")
	}

	return len(names), nil
}

// progressReporter adapts batch progress events to a terminal progress bar,
// rebuilding the bar when a new pass begins.
type progressReporter struct {
	bar   *progressbar.ProgressBar
	stage batch.Stage
}

func (p *progressReporter) report(event batch.Progress) {
	if p.bar == nil || p.stage != event.Stage {
		p.stage = event.Stage
		p.bar = progressbar.NewOptions(event.Total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Running %s pass...[reset]", event.Stage)),
		)
	}
	_ = p.bar.Set(event.Index + 1)
}

func (p *progressReporter) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		fmt.Fprintln(os.Stderr)
		p.bar = nil
	}
}
