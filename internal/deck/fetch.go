package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrStatus indicates a remote source answered with a non-success status.
var ErrStatus = errors.New("unexpected response status")

// ErrEmptySource indicates no source was given.
var ErrEmptySource = errors.New("source is empty")

// Fetcher opens deck sources from the local filesystem or over HTTP.
type Fetcher struct {
	// Client is used for http(s) sources; nil means http.DefaultClient.
	Client *http.Client
	// BaseDir resolves relative local paths.
	BaseDir string
}

// IsRemote reports whether source is an http or https URL.
func IsRemote(source string) bool {
	parsed, err := url.Parse(strings.TrimSpace(source))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// Open returns a reader for source. Callers must close it.
func (f Fetcher) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}
	if IsRemote(source) {
		return f.openRemote(ctx, source)
	}
	return f.openLocal(source)
}

// Resolve returns the path or URL that Open would read.
func (f Fetcher) Resolve(source string) string {
	source = strings.TrimSpace(source)
	if source == "" || IsRemote(source) || filepath.IsAbs(source) || f.BaseDir == "" {
		return source
	}
	return filepath.Join(f.BaseDir, source)
}

func (f Fetcher) openLocal(source string) (io.ReadCloser, error) {
	file, err := os.Open(f.Resolve(source))
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	return file, nil
}

func (f Fetcher) openRemote(ctx context.Context, source string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build deck request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch deck: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("fetch deck: %w: %d", ErrStatus, resp.StatusCode)
	}
	return resp.Body, nil
}
