package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/sitegrade/internal/config"
	"github.com/nao1215/sitegrade/internal/database"
	"github.com/nao1215/sitegrade/internal/fetch"
	"github.com/nao1215/sitegrade/internal/log"
	"github.com/nao1215/sitegrade/internal/pipeline"
	"github.com/nao1215/sitegrade/internal/report"
	"github.com/nao1215/sitegrade/internal/scorer"
)

// ErrEvaluationFailed is returned when at least one page produced no report.
var ErrEvaluationFailed = errors.New("evaluation failed")

// NewEvaluateCmd creates the evaluate command.
func NewEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate [url...]",
		Short: "Evaluate one or more web pages",
		Long: `Evaluate fetches each page with a single GET request and scores it.

Every category (technical, performance, ux, content, presentation) is capped
at 20 points. The total out of 100 is mapped to a grade from A+ to C+ with
three recommendations and the standout features of the page.

A page that does not answer 200 OK is reported as
"❌ Website not accessible: <status>" and is not scored.

Examples:
  # Evaluate the local development server (http://localhost:3000)
  sitegrade evaluate

  # Evaluate several pages, two at a time
  sitegrade evaluate -b 2 https://example.com https://example.org

  # Write a Markdown report to a file
  sitegrade evaluate -m -o report.md https://example.com

  # Store the result for 'sitegrade history'
  sitegrade evaluate --save https://example.com

  # Use custom rules
  sitegrade evaluate -c myrules.yaml https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runEvaluateCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for fetching each page")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of pages evaluated concurrently")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum number of response bytes read from each page (0 for no limit)")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitegrade in current or home directory, then $XDG_CONFIG_HOME/sitegrade/config.yaml)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("show-checks", true,
		"Print the outcome of every check")

	cmd.Flags().BoolP("save", "s", false,
		"Save reports to the history database")
	cmd.Flags().String("data-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runEvaluateCmd executes the evaluate command.
func runEvaluateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runEvaluate(ctx, cfg, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit path must exist; the implicit search may find nothing.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.Rules, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ShowChecks, err = cmd.Flags().GetBool("show-checks")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("data-dir")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.Targets = args
	}

	return cfg, nil
}

// runEvaluate evaluates every target and writes one report or failure line
// per target. It returns ErrEvaluationFailed when any target failed.
func runEvaluate(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	sc, err := scorer.New(cfg.Rules.ApplyTo(scorer.DefaultRules()))
	if err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	var db *database.HistoryDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "path", db.Path())
	}

	output, closeOutput, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer := newReportWriter(cfg, output)

	client := newHTTPClient(cfg.BatchSize)
	defer client.CloseIdleConnections()

	fetcher := fetch.New(
		fetch.WithHTTPClient(client),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	)

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return newEvaluationPipeline(fetcher, sc, db, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	logger.Debug("starting evaluation",
		"targets", cfg.Targets,
		"batch_size", cfg.BatchSize,
		"save", cfg.SaveToDB,
	)

	var (
		mu       sync.Mutex
		failed   int
		writeErr error
	)
	err = bp.ProcessBatchWithCallback(ctx, cfg.Targets, func(ev *pipeline.Evaluation, _ int) {
		mu.Lock()
		defer mu.Unlock()

		if ev.Failed() {
			failed++
			logger.Debug("evaluation failed", "url", ev.URL, "error", ev.Err)
			if _, err := writer.WriteFailure(ev.URL, ev.Err); err != nil && writeErr == nil {
				writeErr = err
			}
			return
		}

		// The report exists, so a remaining error comes from saving it.
		if ev.Err != nil {
			logger.Error("failed to save evaluation", "url", ev.URL, "error", ev.Err)
		}

		if _, err := writer.Write(ev.Report); err != nil && writeErr == nil {
			writeErr = err
		}
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write report: %w", writeErr)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d pages could not be evaluated", ErrEvaluationFailed, failed, len(cfg.Targets))
	}
	return nil
}

// newHTTPClient returns the client shared by every fetch of a batch.
// Its transport keeps one idle connection per concurrent evaluation.
func newHTTPClient(batchSize int) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport
	transport.MaxIdleConnsPerHost = batchSize
	return &http.Client{Transport: transport}
}

// newEvaluationPipeline builds the fetch, score and optional save steps.
func newEvaluationPipeline(fetcher pipeline.PageFetcher, sc *scorer.Scorer, db *database.HistoryDB, logger *slog.Logger) *pipeline.Pipeline {
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewFetchStep(fetcher, logger),
		pipeline.NewScoreStep(sc),
	)
	if db != nil {
		p.AddStep(pipeline.NewSaveStep(db, logger))
	}
	return p
}

// newReportWriter selects the writer for the configured output format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	multiple := len(cfg.Targets) > 1

	switch {
	case cfg.JSONReport:
		opts := []report.JSONWriterOption{report.WithVersion(getVersion())}
		// One document per line when several pages are evaluated.
		if !multiple {
			opts = append(opts, report.WithPrettyPrint())
		}
		return report.NewJSONWriter(output, opts...)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output, report.WithMarkdownChecks(cfg.ShowChecks))
	default:
		return report.NewSimpleWriter(output,
			report.WithShowChecks(cfg.ShowChecks),
			report.WithShowURL(multiple),
		)
	}
}

// openOutput returns the report destination. An empty path means stdout.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
