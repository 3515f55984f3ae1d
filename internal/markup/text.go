package markup

import (
	"regexp"
	"strings"
)

var (
	brRe        = regexp.MustCompile(`(?i)<br\s*/?>`)
	divBreakRe  = regexp.MustCompile(`(?i)</div>\s*<div[^>]*>`)
	divRe       = regexp.MustCompile(`(?i)</?div[^>]*>`)
	pBreakRe    = regexp.MustCompile(`(?i)</p>\s*<p[^>]*>`)
	pRe         = regexp.MustCompile(`(?i)</?p[^>]*>`)
	anchorRe    = regexp.MustCompile(`(?i)<a[^>]+href=["']([^"'>]+)["'][^>]*>([^<]*)</a>`)
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	blankRunsRe = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

// ToText down-converts HTML to readable plain text. It exists for the one
// case where the HTML signature has to ride along in a plaintext message:
// break and block tags become newlines, anchors become "text (url)", and
// everything else is stripped.
func ToText(html string) string {
	if html == "" {
		return ""
	}

	text := brRe.ReplaceAllString(html, "\n")

	// Gmail composes line breaks as sibling divs.
	text = divBreakRe.ReplaceAllString(text, "\n")
	text = divRe.ReplaceAllString(text, "")

	text = pBreakRe.ReplaceAllString(text, "\n\n")
	text = pRe.ReplaceAllString(text, "")

	text = anchorRe.ReplaceAllStringFunc(text, func(m string) string {
		groups := anchorRe.FindStringSubmatch(m)
		href, label := groups[1], strings.TrimSpace(groups[2])
		if label == "" || label == href {
			return href
		}
		return label + " (" + href + ")"
	})

	text = tagRe.ReplaceAllString(text, "")

	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
