package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Format identifies the input format of a message body.
type Format string

const (
	FormatMarkdown  Format = "markdown"
	FormatHTML      Format = "html"
	FormatPlaintext Format = "plaintext"
)

// ParseFormat validates a format string from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatHTML, FormatPlaintext:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported input format %q (expected markdown, html, or plaintext)", s)
}

// md is the shared goldmark instance. GFM brings tables, strikethrough, and
// autolinks; auto heading IDs give every heading a stable anchor. Raw HTML in
// the source passes through, matching markdown conventions for mail bodies.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithUnsafe(),
		// Single newlines render as break tags, the way mail bodies read.
		goldmarkhtml.WithHardWraps(),
	),
)

// ToHTML converts a message body to HTML according to its input format.
//
// HTML input is returned unchanged; the caller is trusted. Plain text is
// escaped and has its newlines turned into break tags. Markdown is rendered
// with GFM extensions, fenced code blocks get syntax-highlighting markup, and
// all styling is inlined onto the elements since mail clients commonly strip
// style blocks.
func ToHTML(format Format, content string) (string, error) {
	switch format {
	case FormatHTML:
		return content, nil
	case FormatPlaintext:
		return plainToHTML(content), nil
	case FormatMarkdown:
		return markdownToHTML(content)
	}
	return "", fmt.Errorf("unsupported input format %q", format)
}

// plainToHTML escapes markup-significant characters and preserves line
// breaks. Escaping must happen first so the inserted break tags survive.
func plainToHTML(content string) string {
	escaped := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(content)
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}

func markdownToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// goldmark is lenient; this only fires on renderer failures.
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	html, err := highlightCodeBlocks(buf.String())
	if err != nil {
		return "", fmt.Errorf("highlighting code blocks: %w", err)
	}

	html, err = inlineStyles(html)
	if err != nil {
		return "", fmt.Errorf("inlining styles: %w", err)
	}

	return html, nil
}
