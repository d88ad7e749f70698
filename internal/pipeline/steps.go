package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/sitegrade/internal/model"
	"github.com/nao1215/sitegrade/internal/scorer"
)

var (
	// ErrNoSample is returned by ScoreStep when no page was fetched.
	ErrNoSample = errors.New("no page sample to score")

	// ErrNoReport is returned by SaveStep when no report was produced.
	ErrNoReport = errors.New("no report to save")
)

// PageFetcher downloads one page. *fetch.Fetcher implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, target string) (model.PageSample, error)
}

// ReportStore persists reports. *database.HistoryDB implements it.
type ReportStore interface {
	SaveReport(ctx context.Context, report *model.Report) (int64, error)
}

// FetchStep downloads the page and records the sample.
type FetchStep struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewFetchStep creates a FetchStep using fetcher.
func NewFetchStep(fetcher PageFetcher, logger *slog.Logger) *FetchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStep{fetcher: fetcher, logger: logger}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches ev.URL.
func (s *FetchStep) Do(ctx context.Context, ev *Evaluation) error {
	sample, err := s.fetcher.Fetch(ctx, ev.URL)
	if err != nil {
		return err
	}

	s.logger.Debug("page fetched",
		"url", ev.URL,
		"content_size", sample.ContentSize,
		"load_time", sample.LoadTime,
	)

	ev.Sample = &sample
	return nil
}

// ScoreStep evaluates the fetched sample.
type ScoreStep struct {
	scorer *scorer.Scorer
}

// NewScoreStep creates a ScoreStep. A nil scorer uses the built-in rules.
func NewScoreStep(s *scorer.Scorer) *ScoreStep {
	if s == nil {
		s = scorer.MustNew(scorer.DefaultRules())
	}
	return &ScoreStep{scorer: s}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do builds ev.Report from ev.Sample.
func (s *ScoreStep) Do(_ context.Context, ev *Evaluation) error {
	if ev.Sample == nil {
		return ErrNoSample
	}
	report := s.scorer.Evaluate(*ev.Sample)
	ev.Report = &report
	return nil
}

// SaveStep stores the report in the history database.
type SaveStep struct {
	store  ReportStore
	logger *slog.Logger
}

// NewSaveStep creates a SaveStep writing to store.
func NewSaveStep(store ReportStore, logger *slog.Logger) *SaveStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save"
}

// Do saves ev.Report.
func (s *SaveStep) Do(ctx context.Context, ev *Evaluation) error {
	if ev.Report == nil {
		return ErrNoReport
	}
	id, err := s.store.SaveReport(ctx, ev.Report)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	s.logger.Debug("evaluation saved", "url", ev.URL, "id", id)
	return nil
}
