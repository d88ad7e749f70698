package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages evaluated at the same time
// unless WithConcurrency says otherwise.
const DefaultConcurrency = 4

// BatchProcessor evaluates several pages concurrently.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each evaluation.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent evaluations.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent evaluations.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch evaluates every URL and returns the evaluations in input
// order. Failed evaluations carry their error in Evaluation.Err; the
// returned error is non-nil only when ctx was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]*Evaluation, error) {
	results := make([]*Evaluation, len(urls))
	err := bp.ProcessBatchWithCallback(ctx, urls, func(ev *Evaluation, index int) {
		results[index] = ev
	})
	return results, err
}

// ProcessBatchWithCallback evaluates every URL and calls callback as each
// evaluation completes. The callback runs on the evaluating goroutine and
// must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	urls []string,
	callback func(ev *Evaluation, index int),
) error {
	bp.logger.Debug("starting batch evaluation",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			ev := NewEvaluation(url)
			// The error is kept in ev.Err so other evaluations continue.
			_ = bp.pipelineFactory().Execute(ctx, ev) //nolint:errcheck

			callback(ev, i)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch evaluation complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return err
}
