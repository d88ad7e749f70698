package pipeline

import "github.com/nao1215/sitegrade/internal/model"

// Evaluation carries the state of one page evaluation through the pipeline.
type Evaluation struct {
	// URL is the page to evaluate.
	URL string

	// Sample is set by FetchStep.
	Sample *model.PageSample

	// Report is set by ScoreStep.
	Report *model.Report

	// Err is the error of the step that stopped the pipeline.
	Err error

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string
}

// NewEvaluation creates the initial state for evaluating url.
func NewEvaluation(url string) *Evaluation {
	return &Evaluation{URL: url}
}

// Failed reports whether the evaluation ended without a report.
func (e *Evaluation) Failed() bool {
	return e.Report == nil
}
