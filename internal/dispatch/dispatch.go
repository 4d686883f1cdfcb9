// Package dispatch hands finished email drafts to mail-capable targets:
// the platform mailto handler, an .eml draft file, or direct SMTP delivery.
package dispatch

import (
	"context"
	"strings"

	"github.com/nhle/mailshare/internal/model"
)

// Dispatcher delivers or stages a composed draft for a recipient. How the
// draft is rendered (plain text vs HTML) is up to the target.
type Dispatcher interface {
	// ID is the stable identifier used in settings and flags.
	ID() string

	// Name is the human-readable label shown when choosing a target.
	Name() string

	// Dispatch hands the draft and its attachments to the target.
	Dispatch(
		ctx context.Context,
		draft model.EmailDraft,
		attachments []model.Attachment,
		recipient string,
	) error
}

// localPath converts an attachment locator to a filesystem path. It returns
// false for locators with a non-file URI scheme, which targets that read
// attachment bytes cannot serve.
func localPath(att model.Attachment) (string, bool) {
	loc := att.Locator
	if rest, ok := strings.CutPrefix(loc, "file://"); ok {
		return rest, true
	}
	if strings.Contains(loc, "://") {
		return "", false
	}
	return loc, true
}
