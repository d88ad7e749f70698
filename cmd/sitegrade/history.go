package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/sitegrade/internal/config"
	"github.com/nao1215/sitegrade/internal/database"
	"github.com/nao1215/sitegrade/internal/model"
)

// Score directions between two evaluations.
const (
	directionImproved  = "improved"
	directionDeclined  = "declined"
	directionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show saved evaluations",
		Long: `History lists evaluations stored with 'sitegrade evaluate --save'.

Without a URL every stored evaluation is listed. With --compare the latest
two evaluations of the URL are compared category by category.

Examples:
  # List every stored evaluation
  sitegrade history

  # List evaluations of one page
  sitegrade history https://example.com

  # Compare the latest two evaluations of a page
  sitegrade history --compare https://example.com

  # List evaluated URLs
  sitegrade history --list-urls`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-urls", "L", false,
		"List every URL with stored evaluations")
	cmd.Flags().BoolP("compare", "C", false,
		"Compare the latest two evaluations of the URL")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("data-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listURLs, err := cmd.Flags().GetBool("list-urls")
	if err != nil {
		return err
	}
	compare, err := cmd.Flags().GetBool("compare")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}

	var url string
	if len(args) > 0 {
		url = args[0]
	}

	// Validate arguments before opening the database.
	if compare && url == "" {
		return errors.New("a URL is required with --compare (use --list-urls to see stored URLs)")
	}

	db, err := database.Open(dataDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case listURLs:
		return listEvaluatedURLs(ctx, out, db, jsonOutput)
	case compare:
		return compareLatest(ctx, out, db, url, jsonOutput)
	default:
		return listHistory(ctx, out, db, url, jsonOutput)
	}
}

// listEvaluatedURLs prints every URL with stored evaluations.
func listEvaluatedURLs(ctx context.Context, out io.Writer, db *database.HistoryDB, jsonOutput bool) error {
	urls, err := db.ListEvaluatedURLs(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		if urls == nil {
			urls = []string{}
		}
		return writeJSON(out, urls)
	}

	if len(urls) == 0 {
		fmt.Fprintln(out, "No evaluations found in the database.")
		fmt.Fprintln(out, "\nUse 'sitegrade evaluate --save <url>' to store an evaluation.")
		return nil
	}

	fmt.Fprintf(out, "Evaluated URLs (%d):\n\n", len(urls))
	for _, u := range urls {
		fmt.Fprintf(out, "  • %s\n", u)
	}
	return nil
}

// historyEntry is the JSON form of one stored evaluation.
type historyEntry struct {
	ID          int64                      `json:"id"`
	URL         string                     `json:"url"`
	EvaluatedAt string                     `json:"evaluated_at"`
	TotalScore  int                        `json:"total_score"`
	Grade       model.Grade                `json:"grade"`
	Scores      map[model.CategoryName]int `json:"scores"`
}

// listHistory prints stored evaluations, newest first.
func listHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, url string, jsonOutput bool) error {
	records, err := db.GetHistory(ctx, url)
	if err != nil {
		return err
	}

	if jsonOutput {
		entries := make([]historyEntry, len(records))
		for i, rec := range records {
			entries[i] = historyEntry{
				ID:          rec.ID,
				URL:         rec.URL,
				EvaluatedAt: rec.EvaluatedAt.Format("2006-01-02T15:04:05Z07:00"),
				TotalScore:  rec.TotalScore,
				Grade:       rec.Grade,
				Scores:      rec.CategoryScores,
			}
		}
		return writeJSON(out, entries)
	}

	if len(records) == 0 {
		if url != "" {
			fmt.Fprintf(out, "No evaluation history found for %s\n", url)
		} else {
			fmt.Fprintln(out, "No evaluations found in the database.")
		}
		fmt.Fprintln(out, "\nUse 'sitegrade evaluate --save <url>' to store an evaluation.")
		return nil
	}

	if url != "" {
		fmt.Fprintf(out, "Evaluation history for %s (%d evaluations):\n\n", url, len(records))
	} else {
		fmt.Fprintf(out, "Evaluation history (%d evaluations):\n\n", len(records))
	}

	fmt.Fprintf(out, "  %-6s  %-20s  %-7s  %-5s  %s\n", "ID", "Date", "Score", "Grade", "URL")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
	for _, rec := range records {
		fmt.Fprintf(out, "  %-6d  %-20s  %-7s  %-5s  %s\n",
			rec.ID,
			rec.EvaluatedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", rec.TotalScore, model.MaxTotalScore),
			rec.Grade,
			rec.URL,
		)
	}
	return nil
}

// categoryDelta is the change of one category between two evaluations.
type categoryDelta struct {
	Name      model.CategoryName `json:"name"`
	Previous  int                `json:"previous"`
	Current   int                `json:"current"`
	Delta     int                `json:"delta"`
	Direction string             `json:"direction"`
}

// comparison is the difference between two evaluations of one URL.
type comparison struct {
	URL           string          `json:"url"`
	PreviousAt    string          `json:"previous_evaluated_at"`
	CurrentAt     string          `json:"current_evaluated_at"`
	PreviousTotal int             `json:"previous_total"`
	CurrentTotal  int             `json:"current_total"`
	TotalDelta    int             `json:"total_delta"`
	PreviousGrade model.Grade     `json:"previous_grade"`
	CurrentGrade  model.Grade     `json:"current_grade"`
	Direction     string          `json:"direction"`
	Categories    []categoryDelta `json:"categories"`
	NewStandouts  []string        `json:"new_standouts,omitempty"`
	LostStandouts []string        `json:"lost_standouts,omitempty"`
	NewlyPassed   []string        `json:"newly_passed,omitempty"`
	NewlyMissing  []string        `json:"newly_missing,omitempty"`
}

// compareReports computes the difference from previous to current.
func compareReports(previous, current *model.Report) comparison {
	c := comparison{
		URL:           current.URL,
		PreviousAt:    previous.EvaluatedAt.Format("2006-01-02T15:04:05Z07:00"),
		CurrentAt:     current.EvaluatedAt.Format("2006-01-02T15:04:05Z07:00"),
		PreviousTotal: previous.TotalScore,
		CurrentTotal:  current.TotalScore,
		TotalDelta:    current.TotalScore - previous.TotalScore,
		PreviousGrade: previous.Grade,
		CurrentGrade:  current.Grade,
		Direction:     direction(current.TotalScore - previous.TotalScore),
	}

	prevScores := previous.Scores()
	curScores := current.Scores()
	for _, name := range model.Categories() {
		delta := curScores[name] - prevScores[name]
		c.Categories = append(c.Categories, categoryDelta{
			Name:      name,
			Previous:  prevScores[name],
			Current:   curScores[name],
			Delta:     delta,
			Direction: direction(delta),
		})
	}

	c.NewStandouts = difference(current.StandoutFeatures, previous.StandoutFeatures)
	c.LostStandouts = difference(previous.StandoutFeatures, current.StandoutFeatures)

	prevPassed := satisfiedChecks(previous)
	curPassed := satisfiedChecks(current)
	c.NewlyPassed = difference(curPassed, prevPassed)
	c.NewlyMissing = difference(prevPassed, curPassed)

	return c
}

// satisfiedChecks returns the texts of all satisfied presence checks.
func satisfiedChecks(r *model.Report) []string {
	var texts []string
	for _, cat := range r.Categories {
		for _, check := range cat.Checks {
			if check.Satisfied() {
				texts = append(texts, check.Text)
			}
		}
	}
	return texts
}

// difference returns the items of a that are not in b, in order.
func difference(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, s := range b {
		seen[s] = true
	}
	var out []string
	for _, s := range a {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}

func direction(delta int) string {
	switch {
	case delta > 0:
		return directionImproved
	case delta < 0:
		return directionDeclined
	default:
		return directionUnchanged
	}
}

// compareLatest prints the comparison of the latest two evaluations of url.
func compareLatest(ctx context.Context, out io.Writer, db *database.HistoryDB, url string, jsonOutput bool) error {
	reports, err := db.GetRecentReports(ctx, url, 2)
	if err != nil {
		return err
	}
	if len(reports) < 2 {
		return fmt.Errorf("at least two saved evaluations of %s are required, found %d", url, len(reports))
	}

	c := compareReports(reports[1], reports[0])
	if jsonOutput {
		return writeJSON(out, c)
	}

	fmt.Fprintf(out, "Comparison for %s\n", c.URL)
	fmt.Fprintf(out, "  previous: %s  %d/%d (%s)\n", c.PreviousAt, c.PreviousTotal, model.MaxTotalScore, c.PreviousGrade)
	fmt.Fprintf(out, "  current:  %s  %d/%d (%s)\n\n", c.CurrentAt, c.CurrentTotal, model.MaxTotalScore, c.CurrentGrade)

	fmt.Fprintf(out, "  %-22s  %8s  %7s  %5s\n", "Category", "Previous", "Current", "Delta")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	for _, cd := range c.Categories {
		fmt.Fprintf(out, "  %-22s  %8d  %7d  %+5d\n", cd.Name.Title(), cd.Previous, cd.Current, cd.Delta)
	}
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	fmt.Fprintf(out, "  %-22s  %8d  %7d  %+5d\n\n", "Total", c.PreviousTotal, c.CurrentTotal, c.TotalDelta)

	fmt.Fprintf(out, "Overall: %s\n", c.Direction)

	writeList(out, "Newly passed checks", "✅", c.NewlyPassed)
	writeList(out, "Newly missing checks", "❌", c.NewlyMissing)
	writeList(out, "New standout features", "🌟", c.NewStandouts)
	writeList(out, "Lost standout features", "🔻", c.LostStandouts)

	return nil
}

func writeList(out io.Writer, title, marker string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(out, "  %s %s\n", marker, item)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
