// Package markup converts message bodies between formats.
//
// ToHTML maps the three supported input formats to a single HTML
// representation: plain text is escaped with line breaks preserved, HTML
// passes through unchanged, and markdown is rendered with GFM extensions,
// syntax-highlighted fenced code blocks, and all CSS inlined onto the
// elements (mail clients commonly strip style blocks).
//
// ToText goes the other way for the signature: it reduces an HTML fragment
// to readable plain text.
package markup
