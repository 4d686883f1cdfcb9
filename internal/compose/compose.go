// Package compose turns a parsed share and its resolved titles into a
// ready-to-send email draft. Composition is pure and deterministic and
// always yields a usable draft, even for an entirely empty share.
package compose

import (
	"html"
	"net/url"
	"strings"

	"github.com/nhle/mailshare/internal/model"
	"github.com/nhle/mailshare/internal/title"
)

const (
	// DefaultSubjectMax is the subject length cap applied when the
	// configuration does not override it.
	DefaultSubjectMax = 160

	// defaultItemCap bounds each label when several links or attachments
	// are joined into one subject line.
	defaultItemCap = 40

	labelSeparator = " | "
	bulletPrefix   = "— "
	placeholder    = "Shared content"
	ellipsis       = "…"
)

// Options tunes composition limits. Zero values fall back to defaults.
type Options struct {
	// SubjectMax is the maximum subject length in characters.
	SubjectMax int

	// ItemCap is the per-label cap used when joining several link or
	// attachment labels into the subject.
	ItemCap int
}

func (o Options) withDefaults() Options {
	if o.SubjectMax <= 0 {
		o.SubjectMax = DefaultSubjectMax
	}
	if o.ItemCap <= 0 {
		o.ItemCap = defaultItemCap
	}
	return o
}

// Compose builds the email draft for a parsed share. fetched maps URLs to
// titles retrieved over the network; a fetched title wins over an inferred
// one, and a URL with neither is represented by the URL itself.
func Compose(parsed model.ParsedShare, fetched map[string]string, opts Options) model.EmailDraft {
	opts = opts.withDefaults()

	links := resolveLinks(parsed, fetched)
	lines := bodyLines(parsed, links)

	htmlLines := make([]string, len(lines))
	for i, line := range lines {
		htmlLines[i] = html.EscapeString(line)
	}

	return model.EmailDraft{
		Subject:  subject(parsed, links, opts),
		TextBody: strings.Join(lines, "\n"),
		HTMLBody: strings.Join(htmlLines, "<br/>"),
	}
}

// resolveLinks pairs each URL with its best available title: fetched if
// present and non-blank, else inferred from the share text, else none.
func resolveLinks(parsed model.ParsedShare, fetched map[string]string) []model.LinkItem {
	if len(parsed.URLs) == 0 {
		return nil
	}

	inferred := title.Infer(parsed.RawText, parsed.URLs)

	links := make([]model.LinkItem, 0, len(parsed.URLs))
	for _, u := range parsed.URLs {
		t := strings.TrimSpace(fetched[u])
		if t == "" {
			t = strings.TrimSpace(inferred[u])
		}
		links = append(links, model.LinkItem{URL: u, Title: t})
	}
	return links
}

// subject builds the bounded subject line: a content-type prefix plus a
// budgeted core, clamped to SubjectMax as a final safety net.
func subject(parsed model.ParsedShare, links []model.LinkItem, opts Options) string {
	prefix := subjectPrefix(parsed)

	budget := opts.SubjectMax - len(prefix) - 1
	if budget < 0 {
		budget = 0
	}

	core := subjectCore(parsed, links, budget, opts.ItemCap)
	full := strings.TrimRight(prefix+" "+core, " ")
	return Ellipsize(full, opts.SubjectMax)
}

// subjectPrefix picks the short content-type marker for the subject.
func subjectPrefix(parsed model.ParsedShare) string {
	switch {
	case len(parsed.URLs) > 0:
		return "[url]"
	case len(parsed.Attachments) > 0 && allImages(parsed.Attachments):
		return "[img]"
	case len(parsed.Attachments) > 0:
		return "[file]"
	case strings.TrimSpace(parsed.RawText) != "":
		return "[txt]"
	default:
		return "[file]"
	}
}

// subjectCore picks the subject text by content priority: links, then
// attachments, then plain text, then a literal placeholder.
func subjectCore(parsed model.ParsedShare, links []model.LinkItem, budget, itemCap int) string {
	switch {
	case len(links) == 1:
		label := links[0].Title
		if label == "" {
			label = links[0].URL
		}
		return Ellipsize(label, budget)

	case len(links) > 1:
		labels := make([]string, len(links))
		for i, l := range links {
			if l.Title != "" {
				labels[i] = l.Title
			} else {
				labels[i] = hostLabel(l.URL)
			}
		}
		return greedyJoin(labels, itemCap, budget)

	case len(parsed.Attachments) == 1:
		return Ellipsize(parsed.Attachments[0].Name(), budget)

	case len(parsed.Attachments) > 1:
		names := make([]string, len(parsed.Attachments))
		for i, a := range parsed.Attachments {
			names[i] = a.Name()
		}
		return greedyJoin(names, itemCap, budget)

	default:
		if line := firstNonBlankLine(parsed.RawText); line != "" {
			return Ellipsize(line, budget)
		}
		return placeholder
	}
}

// bodyLines builds the bulleted body: links first, then attachments, then
// bare text lines, with a placeholder bullet when nothing else exists.
func bodyLines(parsed model.ParsedShare, links []model.LinkItem) []string {
	var lines []string

	for _, l := range links {
		if l.Title != "" && l.Title != l.URL {
			lines = append(lines, bulletPrefix+l.Title+" "+l.URL)
		} else {
			lines = append(lines, bulletPrefix+l.URL)
		}
	}

	// A share that is nothing but links gets a blank line after each
	// bullet for readability, with trailing blanks stripped.
	if len(lines) > 0 && linksOnly(parsed) {
		spaced := make([]string, 0, 2*len(lines))
		for _, line := range lines {
			spaced = append(spaced, line, "")
		}
		for len(spaced) > 0 && spaced[len(spaced)-1] == "" {
			spaced = spaced[:len(spaced)-1]
		}
		lines = spaced
	}

	for _, a := range parsed.Attachments {
		lines = append(lines, bulletPrefix+a.Name())
	}

	if len(links) == 0 && len(parsed.Attachments) == 0 {
		for _, line := range strings.Split(parsed.RawText, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, bulletPrefix+line)
			}
		}
	}

	if len(lines) == 0 {
		lines = []string{bulletPrefix + placeholder}
	}
	return lines
}

// linksOnly reports whether the share contains nothing besides its links:
// no attachments and no non-URL text lines.
func linksOnly(parsed model.ParsedShare) bool {
	if len(parsed.Attachments) > 0 {
		return false
	}
	for _, line := range strings.Split(parsed.RawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			return false
		}
	}
	return true
}

// greedyJoin caps each label, then concatenates labels with the separator
// while the running result still fits the budget. A label that no longer
// fits ends the join; labels are never split.
func greedyJoin(labels []string, itemCap, budget int) string {
	var out string
	for _, label := range labels {
		label = Ellipsize(label, itemCap)

		candidate := label
		if out != "" {
			candidate = out + labelSeparator + label
		}
		if len([]rune(candidate)) > budget {
			break
		}
		out = candidate
	}
	return out
}

// hostLabel returns the URL's host with a leading "www." stripped, falling
// back to the raw URL when it cannot be parsed.
func hostLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// firstNonBlankLine returns the first non-blank, trimmed line of text.
func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// allImages reports whether every attachment has an image MIME type.
func allImages(attachments []model.Attachment) bool {
	for _, a := range attachments {
		if !a.IsImage() {
			return false
		}
	}
	return true
}

// Ellipsize shortens s to at most budget characters. An over-long string
// keeps budget-1 characters with trailing whitespace trimmed, plus a single
// ellipsis; a budget of one or less yields just the ellipsis.
func Ellipsize(s string, budget int) string {
	r := []rune(s)
	if len(r) <= budget {
		return s
	}
	if budget <= 1 {
		return ellipsis
	}
	kept := strings.TrimRight(string(r[:budget-1]), " \t")
	return kept + ellipsis
}
