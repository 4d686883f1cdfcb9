// Package share orchestrates a single share operation: parse the payload,
// resolve link titles, and compose the email draft.
package share

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/nhle/mailshare/internal/compose"
	"github.com/nhle/mailshare/internal/logx"
	"github.com/nhle/mailshare/internal/model"
	"github.com/nhle/mailshare/internal/parser"
)

// ErrShareInProgress is returned when a share operation is started while a
// previous one has not finished.
var ErrShareInProgress = errors.New("another share operation is in progress")

// Settings provides the read-only configuration lookups the pipeline needs.
type Settings interface {
	// FetchTitlesEnabled reports whether link titles should be fetched
	// over the network.
	FetchTitlesEnabled(ctx context.Context) bool
}

// TitleFetcher fetches page titles for a batch of URLs, returning only the
// URLs for which a title could be retrieved.
type TitleFetcher interface {
	FetchAll(ctx context.Context, urls []string) map[string]string
}

// Result is the outcome of a share operation: the draft to hand to a
// dispatch target, plus the parsed share for attachment access.
type Result struct {
	Parsed model.ParsedShare
	Draft  model.EmailDraft
}

// Service runs share operations. At most one operation may be in flight at
// a time; concurrent calls fail fast with ErrShareInProgress.
type Service struct {
	settings Settings
	fetcher  TitleFetcher
	opts     compose.Options

	busy atomic.Bool
}

// NewService creates a share service. fetcher may be nil when network title
// fetching is unavailable; the offline inference still applies.
func NewService(settings Settings, fetcher TitleFetcher, opts compose.Options) *Service {
	return &Service{
		settings: settings,
		fetcher:  fetcher,
		opts:     opts,
	}
}

// Share normalizes the payload and composes the email draft. When the
// "fetch titles" toggle is enabled, titles are fetched concurrently for all
// extracted URLs and the composer waits for the full batch; a failed fetch
// simply leaves its URL without a title.
func (s *Service) Share(ctx context.Context, payload model.RawSharePayload) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrShareInProgress
	}
	defer s.busy.Store(false)

	parsed := parser.Parse(payload)

	var fetched map[string]string
	if len(parsed.URLs) > 0 && s.fetcher != nil && s.settings.FetchTitlesEnabled(ctx) {
		fetched = s.fetcher.FetchAll(ctx, parsed.URLs)
	}

	draft := compose.Compose(parsed, fetched, s.opts)

	logx.FromContext(ctx).Info("share composed",
		"urls", len(parsed.URLs),
		"attachments", len(parsed.Attachments),
		"fetched_titles", len(fetched),
	)

	return &Result{Parsed: parsed, Draft: draft}, nil
}
