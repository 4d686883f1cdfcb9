package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/mailshare/internal/logx"
	"github.com/nhle/mailshare/internal/model"
	"github.com/nhle/mailshare/internal/share"
	"github.com/nhle/mailshare/internal/store"
	"github.com/nhle/mailshare/internal/theme"
)

func shareCmd() *cobra.Command {
	var (
		subject   string
		text      string
		files     []string
		clipTexts []string
		clipFiles []string
		fromJSON  bool
		slot      int
		targetID  string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "share [text...]",
		Short: "Compose an email draft from shared content and hand it off",
		Long: `Share normalizes a payload of text, links, and files into an email
draft and hands it to a dispatch target. The payload comes from flags
and arguments, or from a JSON document on stdin with --json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Scope all pipeline logging to this invocation.
			ctx := logx.With(cmd.Context(), "command", "share", "slot", slot)

			payload, err := buildPayload(cmd.InOrStdin(), subject, text,
				files, clipTexts, clipFiles, args, fromJSON)
			if err != nil {
				return err
			}

			res, err := svc.Share(ctx, payload)
			if err != nil {
				if errors.Is(err, share.ErrShareInProgress) {
					return fmt.Errorf("share rejected: %w", err)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderPreview(res))

			if dryRun {
				return nil
			}

			recipient, err := st.GetRecipient(ctx, slot)
			if err != nil {
				if errors.Is(err, store.ErrNoRecipient) {
					return fmt.Errorf(
						"no recipient in slot %d; set one with 'mailshare recipients set %d <address>'",
						slot, slot,
					)
				}
				return err
			}

			d, err := registry.Resolve(ctx, st, targetID)
			if err != nil {
				return err
			}

			if err := d.Dispatch(ctx, res.Draft, res.Parsed.Attachments, recipient); err != nil {
				return fmt.Errorf("dispatching via %s: %w", d.ID(), err)
			}

			rec := model.ShareRecord{
				Subject:         res.Draft.Subject,
				Target:          d.ID(),
				Recipient:       recipient,
				LinkCount:       len(res.Parsed.URLs),
				AttachmentCount: len(res.Parsed.Attachments),
			}
			if err := st.RecordShare(ctx, rec); err != nil {
				// History is best-effort; the mail already went out.
				logx.FromContext(ctx).Warn("recording share history", "error", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), theme.OKStyle.Render(
				fmt.Sprintf("dispatched via %s to %s", d.ID(), recipient),
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject-like text field of the payload")
	cmd.Flags().StringVar(&text, "text", "", "body text field of the payload")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file to attach (repeatable)")
	cmd.Flags().StringArrayVar(&clipTexts, "clip-text", nil, "inline text of a clip item (repeatable)")
	cmd.Flags().StringArrayVar(&clipFiles, "clip-file", nil, "file of a clip item (repeatable)")
	cmd.Flags().BoolVar(&fromJSON, "json", false, "read the full payload as JSON from stdin")
	cmd.Flags().IntVar(&slot, "slot", 1, "recipient slot to send to")
	cmd.Flags().StringVar(&targetID, "target", "", "dispatch target id (default: persisted choice)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compose and preview the draft without dispatching")

	return cmd
}

// buildPayload assembles the share payload from the command line, or decodes
// it from stdin when jsonIn is set.
func buildPayload(
	in io.Reader,
	subject, text string,
	files, clipTexts, clipFiles, args []string,
	jsonIn bool,
) (model.RawSharePayload, error) {
	if jsonIn {
		var payload model.RawSharePayload
		if err := json.NewDecoder(in).Decode(&payload); err != nil {
			return model.RawSharePayload{}, fmt.Errorf("decoding payload: %w", err)
		}
		return payload, nil
	}

	payload := model.RawSharePayload{
		Subject: subject,
		Body:    text,
	}
	if payload.Body == "" && len(args) > 0 {
		payload.Body = strings.Join(args, " ")
	}
	for _, f := range files {
		payload.Files = append(payload.Files, model.FileReference{Locator: f})
	}
	payload.Clips = pairClips(clipTexts, clipFiles)
	return payload, nil
}

// pairClips zips the repeated --clip-text and --clip-file values by position:
// the i-th text and the i-th file form one clip item. When one list is longer,
// the surplus entries become clips carrying only that field.
func pairClips(texts, files []string) []model.ClipItem {
	n := len(texts)
	if len(files) > n {
		n = len(files)
	}
	if n == 0 {
		return nil
	}

	clips := make([]model.ClipItem, 0, n)
	for i := 0; i < n; i++ {
		var clip model.ClipItem
		if i < len(texts) {
			clip.Text = texts[i]
		}
		if i < len(files) {
			clip.File = &model.FileReference{Locator: files[i]}
		}
		clips = append(clips, clip)
	}
	return clips
}

// renderPreview formats the composed draft for the terminal.
func renderPreview(res *share.Result) string {
	var b strings.Builder

	b.WriteString(theme.LabelStyle.Render("Subject"))
	b.WriteString("  ")
	b.WriteString(theme.SubjectStyle.Render(res.Draft.Subject))
	b.WriteString("\n\n")
	b.WriteString(res.Draft.TextBody)

	if n := len(res.Parsed.Attachments); n > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.LabelStyle.Render(fmt.Sprintf("%d attachment(s)", n)))
	}

	return theme.PreviewStyle.Render(b.String())
}
