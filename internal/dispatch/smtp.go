package dispatch

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/nhle/mailshare/internal/credential"
	"github.com/nhle/mailshare/internal/logx"
	"github.com/nhle/mailshare/internal/model"
)

// SMTP delivers the draft directly through an SMTP account. The account
// password comes from the system keyring, never from configuration files.
type SMTP struct {
	cfg model.SMTPConfig
}

// NewSMTP creates the SMTP dispatch target.
func NewSMTP(cfg model.SMTPConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) ID() string   { return "smtp" }
func (s *SMTP) Name() string { return "Send directly (SMTP)" }

// Dispatch sends the draft with both plain-text and HTML bodies and all
// locally readable attachments.
func (s *SMTP) Dispatch(
	ctx context.Context,
	draft model.EmailDraft,
	attachments []model.Attachment,
	recipient string,
) error {
	if s.cfg.Host == "" {
		return errors.New("smtp host not configured")
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return fmt.Errorf("setting sender %q: %w", from, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("setting recipient %q: %w", recipient, err)
	}
	msg.Subject(draft.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, draft.TextBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, draft.HTMLBody)

	for _, att := range attachments {
		path, ok := localPath(att)
		if !ok {
			logx.FromContext(ctx).Debug("skipping non-local attachment", "locator", att.Locator)
			continue
		}
		msg.AttachFile(path, gomail.WithFileName(att.Name()))
	}

	password, err := credential.Get(credential.KeySMTPPassword)
	if err != nil {
		return fmt.Errorf("loading smtp password: %w", err)
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(password),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending via %s: %w", s.cfg.Host, err)
	}

	logx.FromContext(ctx).Info("draft sent", "host", s.cfg.Host, "recipient", recipient)
	return nil
}
