// Package title resolves human-readable titles for shared URLs, either
// offline from the surrounding share text or by fetching the page itself.
package title

import (
	"regexp"
	"strings"
)

// spaceRun matches any run of whitespace, collapsed to a single space
// when cleaning title candidates.
var spaceRun = regexp.MustCompile(`\s+`)

// leadingBullets are bullet/dash-like characters stripped from the front
// of a title candidate.
const leadingBullets = "•-–— "

// Infer guesses a title for each URL from the non-URL lines of rawText.
// It is pure and deterministic; when the text is too ambiguous to align
// with the URLs it returns an empty map rather than a partial guess.
func Infer(rawText string, urls []string) map[string]string {
	titles := make(map[string]string)
	if len(urls) == 0 || strings.TrimSpace(rawText) == "" {
		return titles
	}

	var urlLines, textLines []string
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isURLLine(line) {
			urlLines = append(urlLines, line)
		} else {
			textLines = append(textLines, line)
		}
	}

	if len(textLines) == 0 {
		return titles
	}

	if len(urls) == 1 {
		if candidate := clean(textLines[0]); candidate != "" {
			titles[urls[0]] = candidate
		}
		return titles
	}

	// Several URLs: the last non-URL line may enumerate their titles,
	// comma-separated. Anything short of a full alignment is discarded.
	parts := strings.Split(textLines[len(textLines)-1], ",")
	var candidates []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) < len(urls) {
		return titles
	}

	for i, u := range urls {
		if candidate := clean(candidates[i]); candidate != "" {
			titles[u] = candidate
		}
	}
	return titles
}

// isURLLine reports whether the line starts with an http(s) scheme.
func isURLLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://")
}

// clean collapses internal whitespace runs, trims, and strips leading
// bullet punctuation from a title candidate.
func clean(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, leadingBullets)
	return strings.TrimSpace(s)
}
