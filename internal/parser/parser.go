// Package parser normalizes raw share payloads into a ParsedShare:
// combined text, deduplicated URLs, and a filtered attachment list.
// Parsing never fails; malformed pieces of the payload are dropped.
package parser

import (
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nhle/mailshare/internal/model"
)

// urlPattern matches http(s) URL tokens: the scheme followed by a run of
// characters that cannot terminate a URL in prose.
var urlPattern = regexp.MustCompile(`(?i)https?://[^\s<>()"]+`)

// trailingPunct are sentence-punctuation characters stripped from the end
// of a matched URL so that "see https://a.example/x." keeps its period.
const trailingPunct = ".,)]};"

// Parse turns a raw share payload into a normalized ParsedShare. Any
// malformed or unresolvable file reference is silently dropped rather
// than surfaced as an error.
func Parse(payload model.RawSharePayload) model.ParsedShare {
	var texts []string
	appendText := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" {
			texts = append(texts, s)
		}
	}

	appendText(payload.Subject)
	appendText(payload.Body)
	for _, clip := range payload.Clips {
		appendText(clip.Text)
	}

	rawText := strings.Join(texts, "\n\n")

	var candidates []model.FileReference
	if payload.File != nil {
		candidates = append(candidates, *payload.File)
	}
	candidates = append(candidates, payload.Files...)
	for _, clip := range payload.Clips {
		if clip.File != nil {
			candidates = append(candidates, *clip.File)
		}
	}

	seen := make(map[string]bool, len(candidates))
	var attachments []model.Attachment
	for _, ref := range candidates {
		if ref.Locator == "" || seen[ref.Locator] {
			continue
		}
		seen[ref.Locator] = true

		mimeType := resolveMIME(ref)
		if strings.HasPrefix(mimeType, "video/") {
			continue
		}

		attachments = append(attachments, model.Attachment{
			Locator:     ref.Locator,
			MIMEType:    mimeType,
			DisplayName: ref.DisplayName,
			Size:        ref.Size,
		})
	}

	return model.ParsedShare{
		RawText:     rawText,
		URLs:        ExtractURLs(rawText),
		Attachments: attachments,
	}
}

// ExtractURLs scans text for http(s) URLs, strips trailing sentence
// punctuation from each match, and returns them deduplicated by exact
// string in first-occurrence order.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var urls []string
	for _, m := range matches {
		u := strings.TrimSpace(m)
		u = strings.TrimRight(u, trailingPunct)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// extTypes covers extensions the video filter must recognize even when the
// host has no system MIME table, plus a few common share types missing from
// Go's built-in table.
var extTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".3gp":  "video/3gpp",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".heic": "image/heic",
}

// resolveMIME returns the declared MIME type of the reference, falling back
// to an extension lookup on the locator. Resolution failure yields the
// empty string, treated everywhere as "unknown".
func resolveMIME(ref model.FileReference) string {
	if ref.MIMEType != "" {
		return normalizeMIME(ref.MIMEType)
	}

	locator := ref.Locator
	// Drop query and fragment so extension detection works on URIs.
	if i := strings.IndexAny(locator, "?#"); i >= 0 {
		locator = locator[:i]
	}

	ext := filepath.Ext(locator)
	if ext == "" && ref.DisplayName != "" {
		ext = filepath.Ext(ref.DisplayName)
	}
	if ext == "" {
		return ""
	}

	ext = strings.ToLower(ext)
	if t, ok := extTypes[ext]; ok {
		return t
	}
	return normalizeMIME(mime.TypeByExtension(ext))
}

// normalizeMIME lowercases a MIME type and strips any parameters
// ("text/html; charset=utf-8" becomes "text/html").
func normalizeMIME(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}
