package model

// FileReference is an opaque pointer to a shared file as handed over by the
// host sharing surface. It is captured once per share operation and never
// mutated afterwards.
type FileReference struct {
	// Locator is the URI or filesystem path identifying the file.
	Locator string `json:"locator"`

	// MIMEType is the declared content type, if the host provided one.
	// When empty, the parser resolves it best-effort from the locator.
	MIMEType string `json:"mime_type,omitempty"`

	// DisplayName is the human-readable file name, if known.
	DisplayName string `json:"display_name,omitempty"`

	// Size is the file size in bytes, or 0 when unknown.
	Size int64 `json:"size,omitempty"`
}

// ClipItem is a host-provided payload unit that may carry inline text,
// a file reference, or both.
type ClipItem struct {
	Text string         `json:"text,omitempty"`
	File *FileReference `json:"file,omitempty"`
}

// RawSharePayload is the bundle of text and files handed to the pipeline by
// the host for a single share operation. All fields are optional; an entirely
// empty payload is still valid input.
type RawSharePayload struct {
	// Subject is the optional subject-like text field of the share.
	Subject string `json:"subject,omitempty"`

	// Body is the optional body text field of the share.
	Body string `json:"body,omitempty"`

	// File is the single-file field, set when exactly one file was shared.
	File *FileReference `json:"file,omitempty"`

	// Files is the multi-file field, in the order the host supplied them.
	Files []FileReference `json:"files,omitempty"`

	// Clips are additional payload units, each optionally carrying inline
	// text and/or a file reference.
	Clips []ClipItem `json:"clips,omitempty"`
}
