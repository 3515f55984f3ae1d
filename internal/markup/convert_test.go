package markup

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"markdown", "markdown", FormatMarkdown, false},
		{"html", "html", FormatHTML, false},
		{"plaintext", "plaintext", FormatPlaintext, false},
		{"empty", "", "", true},
		{"unknown", "rtf", "", true},
		{"wrong case", "Markdown", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToHTMLPassesHTMLThrough(t *testing.T) {
	in := `<p>Hello <b>world</b></p><script>alert(1)</script>`

	out, err := ToHTML(FormatHTML, in)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if out != in {
		t.Errorf("HTML input was modified:\n got %q\nwant %q", out, in)
	}

	// Idempotent: converting the output again changes nothing.
	again, err := ToHTML(FormatHTML, out)
	if err != nil {
		t.Fatalf("ToHTML() second pass error = %v", err)
	}
	if again != out {
		t.Errorf("conversion is not idempotent on HTML input")
	}
}

func TestToHTMLPlaintext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "escapes before line breaks",
			input: "a < b & c > d\nnext",
			want:  "a &lt; b &amp; c &gt; d<br>\nnext",
		},
		{
			name:  "angle brackets never survive",
			input: "<script>\n</script>",
			want:  "&lt;script&gt;<br>\n&lt;/script&gt;",
		},
		{
			name:  "no markup left alone",
			input: "plain line",
			want:  "plain line",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(FormatPlaintext, tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToHTMLPlaintextDeterministic(t *testing.T) {
	in := "x < y\nrow & column"
	first, err := ToHTML(FormatPlaintext, in)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	second, err := ToHTML(FormatPlaintext, in)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if first != second {
		t.Errorf("conversion is not deterministic")
	}
}

func TestToHTMLMarkdown(t *testing.T) {
	in := "# Title\n\nSome *text* with `code`.\n\n" +
		"| a | b |\n|---|---|\n| 1 | 2 |\n"

	out, err := ToHTML(FormatMarkdown, in)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	for _, want := range []string{"<h1", "Title", "<em>text</em>", "<table", "<th"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered markdown missing %q:\n%s", want, out)
		}
	}

	// Styling is inlined, never delivered as a live style block.
	if !strings.Contains(out, "style=") {
		t.Errorf("rendered markdown carries no inline styles:\n%s", out)
	}
}

func TestToHTMLMarkdownHardWrapsSingleNewlines(t *testing.T) {
	out, err := ToHTML(FormatMarkdown, "line one\nline two")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(out, "<br") {
		t.Errorf("single newline did not render as a break tag:\n%s", out)
	}
}

func TestToHTMLMarkdownHighlightsFencedCode(t *testing.T) {
	in := "```go\npackage main\n\nfunc main() {}\n```\n"

	out, err := ToHTML(FormatMarkdown, in)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	if !strings.Contains(out, "<pre") {
		t.Fatalf("no pre block in output:\n%s", out)
	}
	// Highlighted tokens carry their colors as inline styles.
	if !strings.Contains(out, "<span style=") {
		t.Errorf("fenced code block was not highlighted inline:\n%s", out)
	}
	if !strings.Contains(out, "package") || !strings.Contains(out, "main") {
		t.Errorf("code content lost during highlighting:\n%s", out)
	}
}

func TestToHTMLMarkdownDeterministic(t *testing.T) {
	in := "## Heading\n\n```python\nprint(1)\n```\n"

	first, err := ToHTML(FormatMarkdown, in)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	second, err := ToHTML(FormatMarkdown, in)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if first != second {
		t.Errorf("markdown conversion is not deterministic")
	}
}

func TestToHTMLMarkdownLenientOnMalformedInput(t *testing.T) {
	// Unterminated fences, stray brackets, bad tables: goldmark renders
	// something for all of them instead of failing.
	inputs := []string{
		"```go\nnever closed",
		"[link](",
		"| broken | table\n| --- |",
		"*unclosed emphasis",
	}

	for _, in := range inputs {
		if _, err := ToHTML(FormatMarkdown, in); err != nil {
			t.Errorf("ToHTML(%q) error = %v, want graceful rendering", in, err)
		}
	}
}

func TestToHTMLUnsupportedFormat(t *testing.T) {
	if _, err := ToHTML(Format("rtf"), "x"); err == nil {
		t.Errorf("ToHTML() with unsupported format should fail")
	}
}
