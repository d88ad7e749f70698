package report

import (
	"io"
	"strconv"

	"github.com/nao1215/sitegrade/internal/fetch"
	"github.com/nao1215/sitegrade/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)

	// WriteFailure outputs the single failure line of an evaluation
	// that produced no report.
	WriteFailure(target string, cause error) (int, error)
}

// Failure describes an evaluation that produced no report.
type Failure struct {
	// URL is the target that failed.
	URL string `json:"url"`

	// Kind is "fetch_failure" for a non-200 answer and "error" otherwise.
	Kind string `json:"kind"`

	// StatusCode is set for fetch failures.
	StatusCode int `json:"status_code,omitempty"`

	// Message is the failure line shown to the user.
	Message string `json:"message"`
}

// Failure kinds.
const (
	FailureKindFetch = "fetch_failure"
	FailureKindError = "error"
)

// NewFailure classifies cause into a fetch failure or an unhandled error.
func NewFailure(target string, cause error) Failure {
	if statusErr, ok := fetch.IsStatusError(cause); ok {
		return Failure{
			URL:        target,
			Kind:       FailureKindFetch,
			StatusCode: statusErr.StatusCode,
			Message:    "Website not accessible: " + strconv.Itoa(statusErr.StatusCode),
		}
	}
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return Failure{
		URL:     target,
		Kind:    FailureKindError,
		Message: "Error during evaluation: " + msg,
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
