// Package pipeline runs the steps of one page evaluation and evaluates
// several pages concurrently.
//
// A single evaluation is a fixed sequence: FetchStep downloads the page,
// ScoreStep turns the sample into a report and the optional SaveStep stores
// the report in the history database. Each step receives the accumulated
// Evaluation and the pipeline stops at the first failing step, so a failed
// fetch never yields a partial report.
//
// BatchProcessor evaluates several URLs with a concurrency limit using
// errgroup. Evaluations do not share state.
package pipeline
