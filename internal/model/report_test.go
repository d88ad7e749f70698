package model

import (
	"testing"
	"time"
)

func TestCapPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  int
		want int
	}{
		{raw: -3, want: 0},
		{raw: 0, want: 0},
		{raw: 14, want: 14},
		{raw: 20, want: 20},
		{raw: 27, want: 20},
	}

	for _, tt := range tests {
		if got := CapPoints(tt.raw); got != tt.want {
			t.Errorf("CapPoints(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestNewCategoryScore(t *testing.T) {
	t.Parallel()

	checks := []CheckResult{
		{Text: "Lazy Loading", Status: StatusPass, Points: 12},
		{Text: "Missing DNS Prefetch", Status: StatusFail},
		{Text: "Compact page size", Status: StatusPass, Points: 9, Tiered: true},
	}

	score := NewCategoryScore(CategoryPerformance, checks)

	if score.RawPoints != 21 {
		t.Errorf("RawPoints = %d, want 21", score.RawPoints)
	}
	if score.CappedPoints != MaxCategoryPoints {
		t.Errorf("CappedPoints = %d, want %d", score.CappedPoints, MaxCategoryPoints)
	}
	if len(score.Checks) != 3 {
		t.Errorf("Checks = %d, want 3", len(score.Checks))
	}
}

func TestCheckResultSatisfied(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check CheckResult
		want  bool
	}{
		{name: "passed rule", check: CheckResult{Status: StatusPass, Points: 2}, want: true},
		{name: "failed rule", check: CheckResult{Status: StatusFail}, want: false},
		{name: "top tier metric", check: CheckResult{Status: StatusPass, Points: 3, Tiered: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.check.Satisfied(); got != tt.want {
				t.Errorf("Satisfied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckStatusText(t *testing.T) {
	t.Parallel()

	for _, status := range []CheckStatus{StatusPass, StatusWarn, StatusFail} {
		text, err := status.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var got CheckStatus
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText: %v", err)
		}
		if got != status {
			t.Errorf("%s decoded as %s", text, got)
		}
	}

	if CheckStatus(42).String() != "UNKNOWN" {
		t.Error("expected UNKNOWN for an undefined status")
	}
}

func TestCategoryTitle(t *testing.T) {
	t.Parallel()

	want := []string{"Technical Excellence", "Performance", "User Experience", "Content Quality", "Presentation"}
	for i, name := range Categories() {
		if got := name.Title(); got != want[i] {
			t.Errorf("%s.Title() = %q, want %q", name, got, want[i])
		}
	}
	if CategoryName("custom").Title() != "custom" {
		t.Error("unknown categories should use their name")
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	report := &Report{
		URL:         "https://example.com/",
		EvaluatedAt: time.Now(),
		Categories: []CategoryScore{
			{Name: CategoryTechnical, CappedPoints: 18},
			{Name: CategoryUX, CappedPoints: 20},
		},
		TotalScore: 38,
	}

	t.Run("percentage", func(t *testing.T) {
		t.Parallel()
		if got := report.Percentage(); got != 38 {
			t.Errorf("Percentage() = %v, want 38", got)
		}
	})

	t.Run("category lookup", func(t *testing.T) {
		t.Parallel()
		c, ok := report.Category(CategoryUX)
		if !ok || c.CappedPoints != 20 {
			t.Errorf("Category(ux) = %+v, %v", c, ok)
		}
		if _, ok := report.Category(CategoryContent); ok {
			t.Error("expected content to be absent")
		}
	})

	t.Run("scores", func(t *testing.T) {
		t.Parallel()
		scores := report.Scores()
		if len(scores) != 2 || scores[CategoryTechnical] != 18 {
			t.Errorf("Scores() = %v", scores)
		}
	})
}
