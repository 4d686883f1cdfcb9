package model

// EmailDraft is the final, immutable output of the composer: a bounded
// subject line plus matching plain-text and HTML bodies. The host (or a
// dispatch target) picks whichever body representation it can render.
type EmailDraft struct {
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	HTMLBody string `json:"html_body"`
}
