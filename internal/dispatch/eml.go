package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/nhle/mailshare/internal/logx"
	"github.com/nhle/mailshare/internal/model"
)

// EML stages the draft as a complete .eml file (text and HTML parts plus
// attachments) that any mail client can open for sending.
type EML struct {
	dir  string
	from string

	// now is replaceable in tests for deterministic file names.
	now func() time.Time
}

// NewEML creates the eml dispatch target writing into dir. from may be
// empty; the mail client fills it in at send time.
func NewEML(dir, from string) *EML {
	return &EML{dir: dir, from: from, now: time.Now}
}

func (e *EML) ID() string   { return "eml" }
func (e *EML) Name() string { return "Draft file (.eml)" }

// Dispatch writes the draft file. Attachments that cannot be read are
// skipped, not errors; the draft is still produced.
func (e *EML) Dispatch(
	ctx context.Context,
	draft model.EmailDraft,
	attachments []model.Attachment,
	recipient string,
) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("creating draft directory %s: %w", e.dir, err)
	}

	path := filepath.Join(e.dir, "share-"+e.now().Format("20060102-150405")+".eml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating draft file %s: %w", path, err)
	}
	defer f.Close()

	if err := e.write(ctx, f, draft, attachments, recipient); err != nil {
		return fmt.Errorf("writing draft %s: %w", path, err)
	}

	logx.FromContext(ctx).Info("draft written", "path", path)
	return nil
}

func (e *EML) write(
	ctx context.Context,
	w io.Writer,
	draft model.EmailDraft,
	attachments []model.Attachment,
	recipient string,
) error {
	var h mail.Header
	h.SetDate(e.now())
	h.SetSubject(draft.Subject)
	h.SetAddressList("To", []*mail.Address{{Address: recipient}})
	if e.from != "" {
		h.SetAddressList("From", []*mail.Address{{Address: e.from}})
	}
	// Marks the file as an unsent draft so clients open it in compose mode.
	h.Set("X-Unsent", "1")

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating mail writer: %w", err)
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("creating body part: %w", err)
	}

	var textHeader mail.InlineHeader
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	tw, err := iw.CreatePart(textHeader)
	if err != nil {
		return fmt.Errorf("creating text part: %w", err)
	}
	if _, err := io.WriteString(tw, draft.TextBody); err != nil {
		return fmt.Errorf("writing text body: %w", err)
	}
	tw.Close()

	var htmlHeader mail.InlineHeader
	htmlHeader.Set("Content-Type", "text/html; charset=utf-8")
	hw, err := iw.CreatePart(htmlHeader)
	if err != nil {
		return fmt.Errorf("creating html part: %w", err)
	}
	if _, err := io.WriteString(hw, draft.HTMLBody); err != nil {
		return fmt.Errorf("writing html body: %w", err)
	}
	hw.Close()
	iw.Close()

	for _, att := range attachments {
		if err := attach(ctx, mw, att); err != nil {
			return err
		}
	}

	return mw.Close()
}

// attach streams one attachment into the draft. Unreadable or non-local
// attachments are logged and skipped.
func attach(ctx context.Context, mw *mail.Writer, att model.Attachment) error {
	path, ok := localPath(att)
	if !ok {
		logx.FromContext(ctx).Debug("skipping non-local attachment", "locator", att.Locator)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		logx.FromContext(ctx).Debug("skipping unreadable attachment",
			"locator", att.Locator, "error", err)
		return nil
	}
	defer f.Close()

	var ah mail.AttachmentHeader
	contentType := att.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ah.Set("Content-Type", contentType)
	ah.SetFilename(att.Name())

	aw, err := mw.CreateAttachment(ah)
	if err != nil {
		return fmt.Errorf("creating attachment part: %w", err)
	}
	if _, err := io.Copy(aw, f); err != nil {
		aw.Close()
		return fmt.Errorf("writing attachment %s: %w", att.Name(), err)
	}
	return aw.Close()
}
