package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultURL is the page evaluated when no URL argument is given.
	DefaultURL = "http://localhost:3000"

	// DefaultTimeout bounds a single page fetch including the body read.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize is the number of URLs evaluated concurrently.
	DefaultBatchSize = 4

	// DefaultMaxBodySize limits the response body size read from the page.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "sitegrade"
)

// Config holds all options of a sitegrade run.
// It is populated from CLI flags and passed down explicitly.
type Config struct {
	// Targets is the list of URLs to evaluate.
	Targets []string

	// Timeout is the per-request timeout of the page fetch.
	Timeout time.Duration

	// BatchSize is the number of concurrent evaluations when several
	// targets are given.
	BatchSize int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .sitegrade is searched in the current and home directories.
	ConfigFilePath string

	// Rules holds the configuration file contents.
	// A nil value means the built-in rules are used unchanged.
	Rules *File

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Empty means stdout.
	ReportFile string

	// ShowChecks prints one line per rule in the simple report.
	ShowChecks bool

	// SaveToDB stores every finished report in the history database.
	SaveToDB bool

	// DBDir is the directory of the history database.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Targets:     []string{DefaultURL},
		Timeout:     DefaultTimeout,
		BatchSize:   DefaultBatchSize,
		MaxBodySize: DefaultMaxBodySize,
		ShowChecks:  true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for sitegrade.
// On Linux: ~/.local/share/sitegrade
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sitegrade.
// On Linux: ~/.config/sitegrade
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.SaveToDB && c.DBDir == "" {
		return ErrNoDBDir
	}

	return nil
}
