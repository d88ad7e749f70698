package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/sitegrade/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for sharing and
// documentation.
type MarkdownWriter struct {
	baseWriter

	// showChecks adds one table per category listing every check.
	showChecks bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownChecks controls whether per-category check tables are written.
func WithMarkdownChecks(show bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.showChecks = show
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		showChecks: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeScores(md, report)
	if w.showChecks {
		w.writeChecks(md, report)
	}
	w.writeRecommendations(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteFailure outputs a caution block describing the failed evaluation.
func (w *MarkdownWriter) WriteFailure(target string, cause error) (int, error) {
	md := markdown.NewMarkdown(w.output)
	failure := NewFailure(target, cause)

	md.H1("Website Evaluation")
	md.PlainText("")
	md.PlainTextf("Target: `%s`", target)
	md.PlainText("")
	md.Cautionf("%s", failure.Message)
	md.PlainText("")

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the sample information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Website Evaluation")
	md.PlainText("")

	title := report.Title
	if title == "" {
		title = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Title", title},
			{"Evaluated", report.EvaluatedAt.Format("2006-01-02 15:04:05 MST")},
			{"Content Size", strconv.Itoa(report.ContentSize) + " characters"},
			{"Load Time", fmt.Sprintf("%.3f seconds", report.LoadTime.Seconds())},
		},
	})
	md.PlainText("")
}

// writeScores writes the score table, the pie chart and the grade alert.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, report *model.Report) {
	md.H2("Final Evaluation")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Categories)+1)
	for _, c := range report.Categories {
		rows = append(rows, []string{c.Name.Title(), fmt.Sprintf("%d/%d", c.CappedPoints, model.MaxCategoryPoints)})
	}
	rows = append(rows, []string{
		"**Total**",
		fmt.Sprintf("**%d/%d (%.1f%%)**", report.TotalScore, model.MaxTotalScore, report.Percentage()),
	})

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Score"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.TotalScore > 0 {
		w.writePieChart(md, report)
	}

	w.writeGradeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of the capped category points.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Score Distribution"),
		piechart.WithShowData(true),
	)

	for _, c := range report.Categories {
		if c.CappedPoints > 0 {
			chart.LabelAndIntValue(c.Name.Title(), uint64(c.CappedPoints))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeGradeAlert writes the grade and assessment as an alert whose kind
// follows the grade.
func (w *MarkdownWriter) writeGradeAlert(md *markdown.Markdown, report *model.Report) {
	text := fmt.Sprintf("Grade %s: %s", report.Grade, report.Description)

	switch report.Grade {
	case model.GradeAPlus, model.GradeA:
		md.Tip(text)
	case model.GradeAMinus, model.GradeBPlus:
		md.Note(text)
	case model.GradeB:
		md.Importantf("%s", text)
	default:
		md.Warningf("%s", text)
	}
	md.PlainText("")
}

// writeChecks writes one table per category with the outcome of every check.
func (w *MarkdownWriter) writeChecks(md *markdown.Markdown, report *model.Report) {
	md.H2("Checks")
	md.PlainText("")

	for _, c := range report.Categories {
		md.PlainText("### " + c.Name.Title())
		md.PlainText("")

		rows := make([][]string, len(c.Checks))
		for i, check := range c.Checks {
			rows[i] = []string{statusIcon(check.Status), check.Text, strconv.Itoa(check.Points)}
		}

		md.Table(markdown.TableSet{
			Header: []string{"Status", "Check", "Points"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeRecommendations writes recommendations and standout features.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.Report) {
	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(report.Recommendations...)
	md.PlainText("")

	md.H2("Standout Features")
	md.PlainText("")
	if len(report.StandoutFeatures) == 0 {
		md.PlainText("No category reached its standout threshold.")
		md.PlainText("")
		return
	}
	md.BulletList(report.StandoutFeatures...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [sitegrade](https://github.com/nao1215/sitegrade)*")
}
