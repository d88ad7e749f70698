package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/sitegrade/internal/model"
)

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	srv := newPageServer(t)
	dataDir := t.TempDir()
	cfgPath := writeConfig(t, "")

	for range 2 {
		if _, _, err := executeCommand(t, "evaluate", "-c", cfgPath, "--save", "--data-dir", dataDir, srv.URL); err != nil {
			t.Fatalf("evaluate --save: %v", err)
		}
	}

	t.Run("lists URLs", func(t *testing.T) {
		out, _, err := executeCommand(t, "history", "--list-urls", "--data-dir", dataDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Evaluated URLs (1)") || !strings.Contains(out, srv.URL) {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("lists history", func(t *testing.T) {
		out, _, err := executeCommand(t, "history", "--data-dir", dataDir, srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "(2 evaluations)") || !strings.Contains(out, "C+") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("lists history as JSON", func(t *testing.T) {
		out, _, err := executeCommand(t, "history", "--json", "--data-dir", dataDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var entries []historyEntry
		if err := json.Unmarshal([]byte(out), &entries); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if len(entries) != 2 || entries[0].Scores[model.CategoryTechnical] != 3 {
			t.Errorf("entries = %+v", entries)
		}
	})

	t.Run("compares latest two", func(t *testing.T) {
		out, _, err := executeCommand(t, "history", "--compare", "--data-dir", dataDir, srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Comparison for "+srv.URL) || !strings.Contains(out, "Technical Excellence") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("compare requires a URL", func(t *testing.T) {
		_, _, err := executeCommand(t, "history", "--compare", "--data-dir", dataDir)
		if err == nil {
			t.Error("expected error")
		}
	})

	t.Run("compare requires two evaluations", func(t *testing.T) {
		_, _, err := executeCommand(t, "history", "--compare", "--data-dir", dataDir, "https://never.example/")
		if err == nil || !strings.Contains(err.Error(), "at least two") {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("unknown URL has no history", func(t *testing.T) {
		out, _, err := executeCommand(t, "history", "--data-dir", dataDir, "https://never.example/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No evaluation history found") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})
}

func TestCompareReports(t *testing.T) {
	t.Parallel()

	makeReport := func(points map[model.CategoryName]int, passed []string, standouts []string) *model.Report {
		var categories []model.CategoryScore
		total := 0
		for _, name := range model.Categories() {
			checks := []model.CheckResult{{Text: "points", Status: model.StatusFail, Points: points[name]}}
			if name == model.CategoryContent {
				for _, p := range passed {
					checks = append(checks, model.CheckResult{Text: p, Status: model.StatusPass})
				}
			}
			c := model.NewCategoryScore(name, checks)
			total += c.CappedPoints
			categories = append(categories, c)
		}
		return &model.Report{
			URL:              "https://example.com/",
			EvaluatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Categories:       categories,
			TotalScore:       total,
			StandoutFeatures: standouts,
		}
	}

	previous := makeReport(
		map[model.CategoryName]int{model.CategoryTechnical: 10, model.CategoryUX: 16},
		[]string{"Skills Section", "Education"},
		[]string{"Excellent user experience design"},
	)
	current := makeReport(
		map[model.CategoryName]int{model.CategoryTechnical: 14, model.CategoryUX: 12},
		[]string{"Skills Section", "PDF Download"},
		nil,
	)

	c := compareReports(previous, current)

	if c.TotalDelta != 0 || c.Direction != directionUnchanged {
		t.Errorf("total delta = %d (%s), want 0 unchanged", c.TotalDelta, c.Direction)
	}
	if len(c.Categories) != 5 {
		t.Fatalf("categories = %d", len(c.Categories))
	}
	if c.Categories[0].Delta != 4 || c.Categories[0].Direction != directionImproved {
		t.Errorf("technical = %+v", c.Categories[0])
	}
	if c.Categories[2].Delta != -4 || c.Categories[2].Direction != directionDeclined {
		t.Errorf("ux = %+v", c.Categories[2])
	}
	if len(c.NewlyPassed) != 1 || c.NewlyPassed[0] != "PDF Download" {
		t.Errorf("NewlyPassed = %v", c.NewlyPassed)
	}
	if len(c.NewlyMissing) != 1 || c.NewlyMissing[0] != "Education" {
		t.Errorf("NewlyMissing = %v", c.NewlyMissing)
	}
	if len(c.LostStandouts) != 1 || len(c.NewStandouts) != 0 {
		t.Errorf("standouts: new=%v lost=%v", c.NewStandouts, c.LostStandouts)
	}
}
