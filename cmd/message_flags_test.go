package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowsuchagency/gmailcli/internal/markup"
)

func TestPrepareRequiresBody(t *testing.T) {
	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		subject:     "Hello",
		inputFormat: "markdown",
	}

	_, err := f.prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --body or --body-file")
}

func TestPrepareRejectsBodyAndBodyFile(t *testing.T) {
	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		subject:     "Hello",
		body:        "inline",
		bodyFile:    "/tmp/body.md",
		inputFormat: "markdown",
	}

	_, err := f.prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot specify both --body and --body-file")
}

func TestPrepareRejectsUnknownFormat(t *testing.T) {
	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		subject:     "Hello",
		body:        "hi",
		inputFormat: "rtf",
	}

	_, err := f.prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rtf")
}

func TestPrepareConvertsMarkdownBody(t *testing.T) {
	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		cc:          []string{"cc@example.com"},
		subject:     "Hello",
		body:        "# Title\n\nSome *emphasis*.",
		inputFormat: "markdown",
		sender:      "sender@example.com",
	}

	p, err := f.prepare()
	require.NoError(t, err)
	assert.Equal(t, markup.FormatMarkdown, p.format)
	assert.Equal(t, "sender@example.com", p.msg.From)
	assert.Equal(t, []string{"rcpt@example.com"}, p.msg.To)
	assert.Equal(t, []string{"cc@example.com"}, p.msg.Cc)
	assert.Contains(t, p.msg.HTMLBody, "<h1")
	assert.Contains(t, p.msg.HTMLBody, "<em>emphasis</em>")
}

func TestPrepareReadsBodyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0644))

	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		subject:     "Hello",
		bodyFile:    path,
		inputFormat: "plaintext",
	}

	p, err := f.prepare()
	require.NoError(t, err)
	assert.Contains(t, p.msg.HTMLBody, "line one<br>\nline two")
}

func TestPrepareMissingBodyFile(t *testing.T) {
	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		subject:     "Hello",
		bodyFile:    filepath.Join(t.TempDir(), "nope.md"),
		inputFormat: "markdown",
	}

	_, err := f.prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading body file")
}

func TestPrepareMissingAttachmentFailsLocally(t *testing.T) {
	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		subject:     "Hello",
		body:        "hi",
		inputFormat: "plaintext",
		attachments: []string{filepath.Join(t.TempDir(), "missing.pdf")},
	}

	_, err := f.prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attachment file not found")
}

func TestPrepareLoadsAttachments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("report body"), 0644))

	f := &messageFlags{
		to:          []string{"rcpt@example.com"},
		subject:     "Hello",
		body:        "see attached",
		inputFormat: "plaintext",
		attachments: []string{path},
	}

	p, err := f.prepare()
	require.NoError(t, err)
	require.Len(t, p.msg.Attachments, 1)
	assert.Equal(t, "report.txt", p.msg.Attachments[0].Filename)
	assert.Equal(t, []byte("report body"), p.msg.Attachments[0].Data)
}
