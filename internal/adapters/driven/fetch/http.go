package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	userAgent = "webidl-updater"
)

// Fetcher downloads spec sources over HTTP and decodes them to UTF-8.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher whose requests time out after timeout.
// A zero timeout uses DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// NewFetcherWithClient creates a fetcher using a custom http.Client.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads the raw source of a spec.
func (f *Fetcher) Fetch(ctx context.Context, source domain.SpecSource) (domain.Document, error) {
	url := source.FetchURL()

	resp, err := f.do(ctx, http.MethodGet, url)
	if err != nil {
		return domain.Document{}, &domain.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Document{}, &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return domain.Document{}, &domain.FetchError{URL: url, Err: fmt.Errorf("decode: %w", err)}
	}
	text, err := io.ReadAll(body)
	if err != nil {
		return domain.Document{}, &domain.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return domain.Document{
		ShortName: source.ShortName,
		URL:       url,
		Text:      string(text),
	}, nil
}

// Exists reports whether url answers a HEAD request with a success status.
func (f *Fetcher) Exists(ctx context.Context, url string) (bool, error) {
	resp, err := f.do(ctx, http.MethodHead, url)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299, nil
}

func (f *Fetcher) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return f.client.Do(req)
}
