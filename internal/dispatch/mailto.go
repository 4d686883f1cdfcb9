package dispatch

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/nhle/mailshare/internal/logx"
	"github.com/nhle/mailshare/internal/model"
)

// Mailto launches the platform's default mail client with a pre-filled
// compose window via a mailto: URL. Attachments cannot ride a mailto URL;
// they are already listed in the draft body.
type Mailto struct {
	// run executes the platform opener; replaceable in tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewMailto creates the mailto dispatch target.
func NewMailto() *Mailto {
	return &Mailto{
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

func (m *Mailto) ID() string   { return "mailto" }
func (m *Mailto) Name() string { return "Default mail client (mailto)" }

// Dispatch opens the compose window. The draft's plain-text body is used;
// mailto has no HTML representation.
func (m *Mailto) Dispatch(
	ctx context.Context,
	draft model.EmailDraft,
	attachments []model.Attachment,
	recipient string,
) error {
	mailtoURL := BuildMailtoURL(draft, recipient)

	name, args := openerCommand(mailtoURL)
	if err := m.run(ctx, name, args...); err != nil {
		return fmt.Errorf("launching mail client: %w", err)
	}

	if len(attachments) > 0 {
		logx.FromContext(ctx).Info("mailto target cannot carry attachments",
			"skipped", len(attachments))
	}
	return nil
}

// BuildMailtoURL encodes the draft into an RFC 6068 mailto URL.
func BuildMailtoURL(draft model.EmailDraft, recipient string) string {
	v := url.Values{}
	v.Set("subject", draft.Subject)
	v.Set("body", draft.TextBody)

	// Values.Encode escapes spaces as '+', which mailto handlers do not
	// decode; they require %20.
	query := strings.ReplaceAll(v.Encode(), "+", "%20")

	return "mailto:" + url.PathEscape(recipient) + "?" + query
}

// openerCommand returns the platform command that routes a URL to its
// registered handler.
func openerCommand(target string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
