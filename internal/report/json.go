package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/sitegrade/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is embedded in every document when non-empty.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is a shorthand for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion embeds the tool version in every document.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport is the document written for a successful evaluation.
type JSONReport struct {
	// Version is the sitegrade version that generated this report.
	Version string `json:"version,omitempty"`

	// Percentage is the total score as a percentage.
	Percentage float64 `json:"percentage"`

	// LoadTimeSeconds is the load time in seconds.
	LoadTimeSeconds float64 `json:"load_time_seconds"`

	// Report is the full evaluation report.
	Report *model.Report `json:"report"`
}

// JSONFailure is the document written for a failed evaluation.
type JSONFailure struct {
	Version string  `json:"version,omitempty"`
	Failure Failure `json:"failure"`
}

// Write outputs the report wrapped with derived fields.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	return w.writeJSON(&JSONReport{
		Version:         w.version,
		Percentage:      report.Percentage(),
		LoadTimeSeconds: report.LoadTime.Seconds(),
		Report:          report,
	})
}

// WriteFailure outputs the classified failure.
func (w *JSONWriter) WriteFailure(target string, cause error) (int, error) {
	return w.writeJSON(&JSONFailure{
		Version: w.version,
		Failure: NewFailure(target, cause),
	})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}
