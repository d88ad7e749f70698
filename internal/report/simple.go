package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/sitegrade/internal/model"
)

// section holds the console layout of one category.
type section struct {
	heading    string
	rule       int
	scoreLabel string
}

var sections = map[model.CategoryName]section{
	model.CategoryTechnical:    {heading: "🔧 TECHNICAL EXCELLENCE", rule: 30, scoreLabel: "Technical"},
	model.CategoryPerformance:  {heading: "🚀 PERFORMANCE", rule: 20, scoreLabel: "Performance"},
	model.CategoryUX:           {heading: "👤 USER EXPERIENCE", rule: 25, scoreLabel: "UX"},
	model.CategoryContent:      {heading: "📝 CONTENT QUALITY", rule: 25, scoreLabel: "Content"},
	model.CategoryPresentation: {heading: "💼 PROFESSIONAL PRESENTATION", rule: 35, scoreLabel: "Presentation"},
}

// SimpleWriter outputs the emoji-annotated console report.
type SimpleWriter struct {
	baseWriter

	// showChecks prints one line per check under each category heading.
	showChecks bool

	// showURL prints the evaluated URL below the banner.
	showURL bool

	printer *message.Printer
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowChecks controls whether individual check lines are printed.
func WithShowChecks(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showChecks = show
	}
}

// WithShowURL prints the evaluated URL below the banner.
// Useful when several pages are evaluated in one run.
func WithShowURL(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showURL = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showChecks: true,
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, report.URL)
	w.writeSample(&sb, report)
	for _, c := range report.Categories {
		w.writeCategory(&sb, c)
	}
	w.writeFinal(&sb, report)
	w.writeRecommendations(&sb, report)
	w.writeStandouts(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// WriteFailure outputs the banner followed by the failure line.
func (w *SimpleWriter) WriteFailure(target string, cause error) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb, target)
	sb.WriteString("❌ " + NewFailure(target, cause).Message + "\n")

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeBanner(sb *strings.Builder, target string) {
	sb.WriteString("🔍 COMPREHENSIVE WEBSITE EVALUATION\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	if w.showURL {
		sb.WriteString(fmt.Sprintf("🌐 %s\n", target))
	}
}

func (w *SimpleWriter) writeSample(sb *strings.Builder, report *model.Report) {
	sb.WriteString("✅ Website accessible\n")
	sb.WriteString(w.printer.Sprintf("📄 Content size: %d characters\n", report.ContentSize))
	sb.WriteString(fmt.Sprintf("⚡ Load time: %.3f seconds\n", report.LoadTime.Seconds()))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCategory(sb *strings.Builder, c model.CategoryScore) {
	s, ok := sections[c.Name]
	if !ok {
		s = section{heading: strings.ToUpper(c.Name.Title()), rule: 30, scoreLabel: c.Name.Title()}
	}

	sb.WriteString(s.heading + "\n")
	sb.WriteString(strings.Repeat("-", s.rule))
	sb.WriteString("\n")

	if w.showChecks {
		for _, check := range c.Checks {
			sb.WriteString(fmt.Sprintf("%s %s\n", statusIcon(check.Status), check.Text))
		}
	}

	sb.WriteString(fmt.Sprintf("🎯 %s Score: %d/%d\n", s.scoreLabel, c.CappedPoints, model.MaxCategoryPoints))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFinal(sb *strings.Builder, report *model.Report) {
	sb.WriteString("🏆 FINAL EVALUATION\n")
	sb.WriteString(strings.Repeat("=", 30))
	sb.WriteString("\n")

	for _, c := range report.Categories {
		sb.WriteString(fmt.Sprintf("%-21s %d/%d\n", c.Name.Title()+":", c.CappedPoints, model.MaxCategoryPoints))
	}
	sb.WriteString(strings.Repeat("-", 30))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-21s %d/%d (%.1f%%)\n", "TOTAL SCORE:", report.TotalScore, model.MaxTotalScore, report.Percentage()))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("🎖️  GRADE: %s\n", report.Grade))
	sb.WriteString(fmt.Sprintf("📋 ASSESSMENT: %s\n", report.Description))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, report *model.Report) {
	sb.WriteString("💡 RECOMMENDATIONS:\n")
	for _, rec := range report.Recommendations {
		sb.WriteString(rec + "\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeStandouts(sb *strings.Builder, report *model.Report) {
	sb.WriteString("🌟 STANDOUT FEATURES:\n")
	for _, feature := range report.StandoutFeatures {
		sb.WriteString("   • " + feature + "\n")
	}
}

// statusIcon returns the console marker of a check status.
func statusIcon(status model.CheckStatus) string {
	switch status {
	case model.StatusPass:
		return "✅"
	case model.StatusWarn:
		return "⚠️"
	default:
		return "❌"
	}
}
