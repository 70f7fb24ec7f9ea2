package workbook

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Loader fetches spreadsheet workbooks over HTTP. Workbooks are static
// reference data for the week; a fetch failure is surfaced as-is with
// no retry, since retrying within one request will not change the
// outcome.
type Loader struct {
	baseURL    string
	httpClient *http.Client
}

// NewLoader creates a loader rooted at a base URL.
func NewLoader(baseURL string) *Loader {
	return &Loader{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads the workbook at path and parses it. Nothing is
// cached on disk; every request re-fetches.
func (l *Loader) Fetch(path string) (*Workbook, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := l.baseURL + path

	resp, err := l.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workbook %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("workbook fetch error (status %d) for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook body: %w", err)
	}

	return Parse(data)
}
