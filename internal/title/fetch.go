package title

import (
	"context"
	"html"
	"io"
	"net"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/nhle/mailshare/internal/logx"
)

// Default per-fetch timeouts, applied when the configuration does not
// override them.
const (
	DefaultConnectTimeout = 2500 * time.Millisecond
	DefaultReadTimeout    = 2500 * time.Millisecond
)

// maxBodyBytes bounds how much of a response body is read when looking for
// a <title> element. Reading stops here even if the server keeps sending.
const maxBodyBytes = 64 << 10

// userAgent identifies title-fetch requests to remote servers.
const userAgent = "mailshare/1.0 (link title fetcher)"

// titlePattern extracts the first <title> element, case-insensitively and
// across newlines.
var titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Fetcher performs best-effort, time-bounded HTTP fetches of page titles.
// Every failure mode (connection error, timeout, non-HTML response, missing
// title, oversized body) yields the empty string; fetching never reports an
// error to its caller.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the given connect and read timeouts.
// Non-positive values fall back to the defaults. Redirects are followed.
func NewFetcher(connectTimeout, readTimeout time.Duration) *Fetcher {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			// Overall bound across connect, redirects, and body read.
			Timeout: connectTimeout + readTimeout,
		},
	}
}

// FetchTitle retrieves the <title> of the page at url, collapsed to a single
// whitespace-normalized line. It returns the empty string on any failure.
func (f *Fetcher) FetchTitle(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		logx.FromContext(ctx).Debug("title fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logx.FromContext(ctx).Debug("title fetch non-2xx", "url", url, "status", resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil && len(body) == 0 {
		logx.FromContext(ctx).Debug("title fetch read failed", "url", url, "error", err)
		return ""
	}

	m := titlePattern.FindSubmatch(body)
	if m == nil {
		return ""
	}

	return clean(html.UnescapeString(string(m[1])))
}

// FetchAll fetches titles for all URLs concurrently, one task per URL, and
// waits for every task to finish or time out before returning. URLs whose
// fetch produced no title are absent from the result.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) map[string]string {
	results := make([]string, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			results[i] = f.FetchTitle(ctx, u)
		}(i, u)
	}
	wg.Wait()

	titles := make(map[string]string, len(urls))
	for i, u := range urls {
		if results[i] != "" {
			titles[u] = results[i]
		}
	}
	return titles
}
