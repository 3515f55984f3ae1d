package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/vanng822/go-premailer/premailer"
)

// emailCSS styles the rendered document for mail clients. It is never shipped
// as a style block; inlineStyles pushes every rule onto the elements.
const emailCSS = `
code {
  background: #f6f8fa;
  padding: 2px 4px;
  border-radius: 3px;
  font-family: 'Monaco', 'Menlo', 'Ubuntu Mono', monospace;
  font-size: 85%;
  color: #d73a49;
}
pre {
  background: #f6f8fa;
  border: 1px solid #d1d9e0;
  border-radius: 6px;
  padding: 16px;
  margin: 16px 0;
  overflow-x: auto;
  font-family: 'Monaco', 'Menlo', 'Ubuntu Mono', monospace;
  font-size: 14px;
  line-height: 1.45;
}
pre code {
  background: transparent;
  padding: 0;
  border-radius: 0;
  color: inherit;
}
table {
  border-collapse: collapse;
  width: 100%;
  margin: 16px 0;
}
th, td {
  border: 1px solid #d1d9e0;
  padding: 8px 12px;
  text-align: left;
}
th {
  background: #f6f8fa;
  font-weight: bold;
}
blockquote {
  border-left: 4px solid #d1d9e0;
  padding: 0 16px;
  margin: 16px 0;
  color: #6a737d;
}
`

// highlightFormatter emits token colors as inline style attributes, not
// classes, so the markup is self-contained.
var highlightFormatter = chromahtml.New(chromahtml.TabWidth(4))

// highlightCodeBlocks replaces every fenced code block in the rendered HTML
// with syntax-highlighted markup.
func highlightCodeBlocks(htmlStr string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", fmt.Errorf("parsing rendered HTML: %w", err)
	}

	doc.Find("pre > code").Each(func(_ int, s *goquery.Selection) {
		code := s.Text()
		if code == "" {
			return
		}

		lexer := lexerFor(languageOf(s), code)
		iterator, err := lexer.Tokenise(nil, code)
		if err != nil {
			return // leave the block unhighlighted
		}

		var buf bytes.Buffer
		if err := highlightFormatter.Format(&buf, styles.GitHub, iterator); err != nil {
			return
		}

		// chroma emits a complete <pre>; swap out the original one.
		s.Parent().ReplaceWithHtml(buf.String())
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing HTML: %w", err)
	}
	return out, nil
}

// languageOf extracts the fence language from the class attribute,
// e.g. class="language-go".
func languageOf(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	for _, part := range strings.Fields(class) {
		if strings.HasPrefix(part, "language-") {
			return strings.TrimPrefix(part, "language-")
		}
	}
	return ""
}

func lexerFor(lang, code string) chroma.Lexer {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return lexer
}

// inlineStyles pushes the email stylesheet onto the elements themselves.
func inlineStyles(html string) (string, error) {
	withCSS := fmt.Sprintf("<style type=\"text/css\">%s</style>%s", emailCSS, html)

	options := premailer.NewOptions()
	options.RemoveClasses = false
	options.CssToAttributes = true

	p, err := premailer.NewPremailerFromString(withCSS, options)
	if err != nil {
		return "", err
	}
	return p.Transform()
}
