package model

import (
	"strings"
)

// Attachment is a file reference that survived parsing: deduplicated by
// locator, with a resolved (possibly empty) MIME type, and guaranteed not
// to be a video.
type Attachment struct {
	Locator     string `json:"locator"`
	MIMEType    string `json:"mime_type,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// Name returns the best available human-readable name for the attachment:
// the display name if present, otherwise the last path segment of the
// locator, otherwise the raw locator.
func (a Attachment) Name() string {
	if a.DisplayName != "" {
		return lastSegment(a.DisplayName)
	}
	if seg := lastSegment(a.Locator); seg != "" {
		return seg
	}
	return a.Locator
}

// IsImage reports whether the attachment has an image MIME type.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MIMEType, "image/")
}

// lastSegment returns the final path component of s, tolerating both URI
// and filesystem separators.
func lastSegment(s string) string {
	s = strings.TrimRight(s, "/\\")
	if i := strings.LastIndexAny(s, "/\\"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ParsedShare is the normalized form of a RawSharePayload. It is created
// once per share operation by the parser and read-only afterwards.
type ParsedShare struct {
	// RawText is all text parts of the payload joined with blank lines,
	// trimmed.
	RawText string `json:"raw_text"`

	// URLs are the http(s) URLs extracted from RawText, deduplicated by
	// exact string, in first-occurrence order.
	URLs []string `json:"urls"`

	// Attachments are the surviving file references, deduplicated by
	// locator, in first-seen order, with video types excluded.
	Attachments []Attachment `json:"attachments"`
}

// IsEmpty reports whether the parsed share carries no content at all.
func (p ParsedShare) IsEmpty() bool {
	return p.RawText == "" && len(p.URLs) == 0 && len(p.Attachments) == 0
}

// LinkItem pairs an extracted URL with its resolved title, if any.
type LinkItem struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}
