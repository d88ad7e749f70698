// Package report renders evaluation reports.
//
// This package contains writers for different output formats:
//   - SimpleWriter: emoji-annotated console output
//   - MarkdownWriter: Markdown with score tables and a mermaid pie chart
//   - JSONWriter: structured JSON for tool integration
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably. A failed evaluation is rendered with WriteFailure,
// which never prints a partial report.
package report
