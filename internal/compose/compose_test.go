package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mailshare/internal/model"
)

func TestCompose_TextOnly(t *testing.T) {
	parsed := model.ParsedShare{RawText: "Hello\nWorld"}

	draft := Compose(parsed, nil, Options{})

	assert.Equal(t, "[txt] Hello", draft.Subject)
	assert.Equal(t, "— Hello\n— World", draft.TextBody)
	assert.Equal(t, "— Hello<br/>— World", draft.HTMLBody)
}

func TestCompose_EmptyShare(t *testing.T) {
	draft := Compose(model.ParsedShare{}, nil, Options{})

	assert.Equal(t, "[file] Shared content", draft.Subject)
	assert.Equal(t, "— Shared content", draft.TextBody)
	assert.Equal(t, "— Shared content", draft.HTMLBody)
}

func TestCompose_SingleLinkWithFetchedTitle(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "https://a.example/x",
		URLs:    []string{"https://a.example/x"},
	}
	fetched := map[string]string{"https://a.example/x": "My Title"}

	draft := Compose(parsed, fetched, Options{})

	assert.Equal(t, "[url] My Title", draft.Subject)
	assert.Contains(t, draft.TextBody, "— My Title https://a.example/x")
}

func TestCompose_SingleLinkNoTitle(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "https://a.example/x",
		URLs:    []string{"https://a.example/x"},
	}

	draft := Compose(parsed, nil, Options{})

	assert.Equal(t, "[url] https://a.example/x", draft.Subject)
	assert.Equal(t, "— https://a.example/x", draft.TextBody)
}

func TestCompose_FetchedTitleBeatsInferred(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "Inferred Title\nhttps://a.example/x",
		URLs:    []string{"https://a.example/x"},
	}
	fetched := map[string]string{"https://a.example/x": "Fetched Title"}

	draft := Compose(parsed, fetched, Options{})

	assert.Equal(t, "[url] Fetched Title", draft.Subject)
}

func TestCompose_BlankFetchedFallsBackToInferred(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "Inferred Title\nhttps://a.example/x",
		URLs:    []string{"https://a.example/x"},
	}
	fetched := map[string]string{"https://a.example/x": "   "}

	draft := Compose(parsed, fetched, Options{})

	assert.Equal(t, "[url] Inferred Title", draft.Subject)
}

func TestCompose_LinksOnlyBodySpacing(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "https://a.example\nhttps://b.example",
		URLs:    []string{"https://a.example", "https://b.example"},
	}

	draft := Compose(parsed, nil, Options{})

	assert.Equal(t, "— https://a.example\n\n— https://b.example", draft.TextBody)
	assert.False(t, strings.HasSuffix(draft.TextBody, "\n"))
}

func TestCompose_LinksWithTextNoSpacing(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "some commentary\nhttps://a.example\nhttps://b.example",
		URLs:    []string{"https://a.example", "https://b.example"},
	}

	draft := Compose(parsed, map[string]string{}, Options{})

	assert.NotContains(t, draft.TextBody, "\n\n")
}

func TestCompose_MultiLinkSubjectUsesHosts(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "https://www.alpha.example/p\nhttps://beta.example/q",
		URLs:    []string{"https://www.alpha.example/p", "https://beta.example/q"},
	}

	draft := Compose(parsed, nil, Options{})

	assert.Equal(t, "[url] alpha.example | beta.example", draft.Subject)
}

func TestCompose_MultiLinkGreedyJoinStops(t *testing.T) {
	urls := []string{
		"https://one.example", "https://two.example",
		"https://three.example", "https://four.example",
	}
	parsed := model.ParsedShare{
		RawText: strings.Join(urls, "\n"),
		URLs:    urls,
	}
	fetched := map[string]string{
		urls[0]: "First Title",
		urls[1]: "Second Title",
		urls[2]: "Third Title",
		urls[3]: "Fourth Title",
	}

	draft := Compose(parsed, fetched, Options{SubjectMax: 40})

	assert.LessOrEqual(t, len([]rune(draft.Subject)), 40)
	assert.Contains(t, draft.Subject, "First Title")
	// Labels that no longer fit are dropped whole, never split.
	assert.NotContains(t, draft.Subject, "Third")
}

func TestCompose_MultiLinkItemCap(t *testing.T) {
	urls := []string{"https://a.example", "https://b.example"}
	long := strings.Repeat("x", 60)
	parsed := model.ParsedShare{
		RawText: strings.Join(urls, "\n"),
		URLs:    urls,
	}
	fetched := map[string]string{urls[0]: long, urls[1]: "Short"}

	draft := Compose(parsed, fetched, Options{})

	assert.Contains(t, draft.Subject, strings.Repeat("x", 39)+"…")
	assert.Contains(t, draft.Subject, "Short")
}

func TestCompose_SingleAttachment(t *testing.T) {
	parsed := model.ParsedShare{
		Attachments: []model.Attachment{
			{Locator: "/data/docs/report-final.pdf", MIMEType: "application/pdf"},
		},
	}

	draft := Compose(parsed, nil, Options{})

	assert.Equal(t, "[file] report-final.pdf", draft.Subject)
	assert.Equal(t, "— report-final.pdf", draft.TextBody)
}

func TestCompose_AllImagesPrefix(t *testing.T) {
	parsed := model.ParsedShare{
		Attachments: []model.Attachment{
			{Locator: "/pics/a.png", MIMEType: "image/png"},
			{Locator: "/pics/b.jpg", MIMEType: "image/jpeg"},
		},
	}

	draft := Compose(parsed, nil, Options{})

	assert.True(t, strings.HasPrefix(draft.Subject, "[img] "), draft.Subject)
	assert.Contains(t, draft.Subject, "a.png | b.jpg")
}

func TestCompose_MixedAttachmentsPrefix(t *testing.T) {
	parsed := model.ParsedShare{
		Attachments: []model.Attachment{
			{Locator: "/pics/a.png", MIMEType: "image/png"},
			{Locator: "/docs/b.pdf", MIMEType: "application/pdf"},
		},
	}

	draft := Compose(parsed, nil, Options{})

	assert.True(t, strings.HasPrefix(draft.Subject, "[file] "), draft.Subject)
}

func TestCompose_LinksAndAttachments(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "https://a.example/x",
		URLs:    []string{"https://a.example/x"},
		Attachments: []model.Attachment{
			{Locator: "/docs/notes.txt", MIMEType: "text/plain"},
		},
	}

	draft := Compose(parsed, nil, Options{})

	require.True(t, strings.HasPrefix(draft.Subject, "[url] "))
	lines := strings.Split(draft.TextBody, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "— https://a.example/x", lines[0])
	assert.Equal(t, "— notes.txt", lines[1])
}

func TestCompose_HTMLBodyEscaped(t *testing.T) {
	parsed := model.ParsedShare{
		RawText: "https://a.example/x?a=1&b=2",
		URLs:    []string{"https://a.example/x?a=1&b=2"},
	}
	fetched := map[string]string{"https://a.example/x?a=1&b=2": "<b>Bold & Co</b>"}

	draft := Compose(parsed, fetched, Options{})

	assert.NotContains(t, draft.HTMLBody, "<b>")
	assert.Contains(t, draft.HTMLBody, "&lt;b&gt;Bold &amp; Co&lt;/b&gt;")
}

func TestCompose_SubjectNeverExceedsMax(t *testing.T) {
	long := strings.Repeat("word ", 100)
	tests := []struct {
		name   string
		parsed model.ParsedShare
		max    int
	}{
		{"long text", model.ParsedShare{RawText: long}, 160},
		{"tiny budget", model.ParsedShare{RawText: long}, 8},
		{"budget smaller than prefix", model.ParsedShare{RawText: long}, 3},
		{
			"long url",
			model.ParsedShare{
				RawText: "https://a.example/" + strings.Repeat("p/", 200),
				URLs:    []string{"https://a.example/" + strings.Repeat("p/", 200)},
			},
			160,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := Compose(tt.parsed, nil, Options{SubjectMax: tt.max})
			assert.LessOrEqual(t, len([]rune(draft.Subject)), tt.max)
			assert.NotEmpty(t, draft.Subject)
		})
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		budget int
		want   string
	}{
		{"fits unchanged", "short", 10, "short"},
		{"exact fit", "12345", 5, "12345"},
		{"truncated", "abcdefghij", 5, "abcd…"},
		{"trailing space trimmed", "abc  defgh", 6, "abc…"},
		{"budget one", "abcdef", 1, "…"},
		{"budget zero", "abcdef", 0, "…"},
		{"multibyte runes", "héllo wörld", 6, "héllo…"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ellipsize(tt.in, tt.budget))
		})
	}
}

func TestEllipsize_Idempotent(t *testing.T) {
	once := Ellipsize("a fairly long string to cut down", 12)
	twice := Ellipsize(once, 12)
	assert.Equal(t, once, twice)
}
