package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer_SingleURL(t *testing.T) {
	titles := Infer("My Page\nhttps://a.example/x", []string{"https://a.example/x"})

	require.Len(t, titles, 1)
	assert.Equal(t, "My Page", titles["https://a.example/x"])
}

func TestInfer_SingleURLNoTextLines(t *testing.T) {
	titles := Infer("https://a.example/x", []string{"https://a.example/x"})
	assert.Empty(t, titles)
}

func TestInfer_SingleURLCleansCandidate(t *testing.T) {
	tests := []struct {
		name    string
		rawText string
		want    string
	}{
		{"bullet stripped", "• My   Page\nhttps://a.example", "My Page"},
		{"dash stripped", "- My Page\nhttps://a.example", "My Page"},
		{"en dash stripped", "– My Page\nhttps://a.example", "My Page"},
		{"whitespace collapsed", "My \t  Page  here\nhttps://a.example", "My Page here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			titles := Infer(tt.rawText, []string{"https://a.example"})
			assert.Equal(t, tt.want, titles["https://a.example"])
		})
	}
}

func TestInfer_MultiURL(t *testing.T) {
	rawText := "https://a.example\nhttps://b.example\nTitle A, Title B"
	urls := []string{"https://a.example", "https://b.example"}

	titles := Infer(rawText, urls)

	require.Len(t, titles, 2)
	assert.Equal(t, "Title A", titles["https://a.example"])
	assert.Equal(t, "Title B", titles["https://b.example"])
}

func TestInfer_MultiURLTooFewParts(t *testing.T) {
	rawText := "https://a.example\nhttps://b.example\nOnly One Title"
	urls := []string{"https://a.example", "https://b.example"}

	titles := Infer(rawText, urls)

	assert.Empty(t, titles, "partial alignment must not be guessed")
}

func TestInfer_MultiURLUsesLastTextLine(t *testing.T) {
	rawText := "ignored header\nhttps://a.example\nhttps://b.example\nA, B"
	urls := []string{"https://a.example", "https://b.example"}

	titles := Infer(rawText, urls)

	require.Len(t, titles, 2)
	assert.Equal(t, "A", titles["https://a.example"])
	assert.Equal(t, "B", titles["https://b.example"])
}

func TestInfer_EmptyInputs(t *testing.T) {
	assert.Empty(t, Infer("", []string{"https://a.example"}))
	assert.Empty(t, Infer("   \n  ", []string{"https://a.example"}))
	assert.Empty(t, Infer("some text", nil))
}

func TestInfer_URLDetectionIsCaseInsensitive(t *testing.T) {
	rawText := "My Page\nHTTPS://A.EXAMPLE/x"
	titles := Infer(rawText, []string{"HTTPS://A.EXAMPLE/x"})

	require.Len(t, titles, 1)
	assert.Equal(t, "My Page", titles["HTTPS://A.EXAMPLE/x"])
}
