package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload_FromFlags(t *testing.T) {
	payload, err := buildPayload(nil, "a subject", "some text",
		[]string{"/tmp/a.pdf", "/tmp/b.jpg"}, nil, nil, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "a subject", payload.Subject)
	assert.Equal(t, "some text", payload.Body)
	require.Len(t, payload.Files, 2)
	assert.Equal(t, "/tmp/a.pdf", payload.Files[0].Locator)
	assert.Nil(t, payload.Clips)
}

func TestBuildPayload_ArgsBecomeBody(t *testing.T) {
	payload, err := buildPayload(nil, "", "", nil, nil, nil,
		[]string{"check", "this", "out"}, false)
	require.NoError(t, err)
	assert.Equal(t, "check this out", payload.Body)
}

func TestBuildPayload_TextFlagWinsOverArgs(t *testing.T) {
	payload, err := buildPayload(nil, "", "flag text", nil, nil, nil,
		[]string{"arg", "text"}, false)
	require.NoError(t, err)
	assert.Equal(t, "flag text", payload.Body)
}

func TestBuildPayload_ClipsPairByPosition(t *testing.T) {
	payload, err := buildPayload(nil, "", "", nil,
		[]string{"first note", "second note"},
		[]string{"/tmp/a.png", "/tmp/b.png"},
		nil, false)
	require.NoError(t, err)

	require.Len(t, payload.Clips, 2)
	assert.Equal(t, "first note", payload.Clips[0].Text)
	require.NotNil(t, payload.Clips[0].File)
	assert.Equal(t, "/tmp/a.png", payload.Clips[0].File.Locator)
	assert.Equal(t, "second note", payload.Clips[1].Text)
	require.NotNil(t, payload.Clips[1].File)
	assert.Equal(t, "/tmp/b.png", payload.Clips[1].File.Locator)
}

func TestBuildPayload_SurplusClipEntries(t *testing.T) {
	// More files than texts: the extra file forms a file-only clip.
	payload, err := buildPayload(nil, "", "", nil,
		[]string{"only note"},
		[]string{"/tmp/a.png", "/tmp/b.png"},
		nil, false)
	require.NoError(t, err)

	require.Len(t, payload.Clips, 2)
	assert.Equal(t, "only note", payload.Clips[0].Text)
	assert.Equal(t, "", payload.Clips[1].Text)
	require.NotNil(t, payload.Clips[1].File)
	assert.Equal(t, "/tmp/b.png", payload.Clips[1].File.Locator)

	// More texts than files: the extra text forms a text-only clip.
	payload, err = buildPayload(nil, "", "", nil,
		[]string{"a", "b"}, []string{"/tmp/a.png"}, nil, false)
	require.NoError(t, err)

	require.Len(t, payload.Clips, 2)
	assert.Nil(t, payload.Clips[1].File)
	assert.Equal(t, "b", payload.Clips[1].Text)
}

func TestBuildPayload_FromJSON(t *testing.T) {
	in := strings.NewReader(`{
		"subject": "hello",
		"body": "https://example.com",
		"file": {"locator": "/tmp/x.png", "mime_type": "image/png"},
		"clips": [{"text": "extra"}]
	}`)

	payload, err := buildPayload(in, "", "", nil, nil, nil, nil, true)
	require.NoError(t, err)

	assert.Equal(t, "hello", payload.Subject)
	assert.Equal(t, "https://example.com", payload.Body)
	require.NotNil(t, payload.File)
	assert.Equal(t, "image/png", payload.File.MIMEType)
	require.Len(t, payload.Clips, 1)
	assert.Equal(t, "extra", payload.Clips[0].Text)
}

func TestBuildPayload_BadJSON(t *testing.T) {
	_, err := buildPayload(strings.NewReader("{not json"), "", "", nil, nil, nil, nil, true)
	assert.Error(t, err)
}
