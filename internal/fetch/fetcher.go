package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/nao1215/sitegrade/internal/model"
)

// Default fetcher settings.
const (
	// DefaultTimeout bounds the whole request including the body read.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits how much of the body is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Fetcher performs the single GET request of an evaluation.
type Fetcher struct {
	// client is the HTTP client used for the request.
	client *http.Client

	// maxBodySize limits the response body size. Zero means no limit.
	maxBodySize int64

	// logger receives debug output about each request.
	logger *slog.Logger

	// now returns the current time. Replaced in tests.
	now func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client. The client's own timeout is kept
// unless WithTimeout follows. The client itself is never modified.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout sets the request timeout on a copy of the fetcher's client.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			client := *f.client
			client.Timeout = timeout
			f.client = &client
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes read.
// Zero reads the whole body; negative sizes are ignored.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size >= 0 {
			f.maxBodySize = size
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a Fetcher. Without options it uses its own client with
// DefaultTimeout.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: DefaultTimeout},
		maxBodySize: DefaultMaxBodySize,
		logger:      slog.Default(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch sends one GET request to target and returns the page sample.
//
// The request carries no custom headers, query parameters or credentials.
// A non-200 response returns a *StatusError; a transport failure returns
// the wrapped client error. In both cases the returned sample is empty.
func (f *Fetcher) Fetch(ctx context.Context, target string) (model.PageSample, error) {
	if err := ValidateURL(target); err != nil {
		return model.PageSample{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return model.PageSample{}, fmt.Errorf("failed to create request: %w", err)
	}

	f.logger.Debug("fetching page", "url", target)

	start := f.now()
	resp, err := f.client.Do(req)
	if err != nil {
		return model.PageSample{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort
		return model.PageSample{}, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	content, err := readBody(resp, f.maxBodySize)
	if err != nil {
		return model.PageSample{}, fmt.Errorf("failed to read body: %w", err)
	}
	elapsed := f.now().Sub(start)

	sample := model.PageSample{
		URL:         target,
		Title:       ExtractTitle(content),
		Content:     content,
		ContentSize: utf8.RuneCountInString(content),
		LoadTime:    elapsed,
		HTTPStatus:  resp.StatusCode,
		FetchedAt:   start,
	}

	f.logger.Debug("page fetched",
		"url", target,
		"status", resp.StatusCode,
		"size", sample.ContentSize,
		"elapsed", elapsed,
	)

	return sample, nil
}

// readBody reads at most maxBodySize bytes, or the whole body when
// maxBodySize is zero, and decodes them to UTF-8 using the charset
// announced by the response.
func readBody(resp *http.Response, maxBodySize int64) (string, error) {
	var body io.Reader = resp.Body
	if maxBodySize > 0 {
		body = io.LimitReader(resp.Body, maxBodySize)
	}

	reader, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ValidateURL checks that target is an absolute http or https URL.
func ValidateURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, target)
	}
	return nil
}
