// Package message assembles outgoing MIME messages.
//
// A Message combines sender, recipients, subject, the already-converted HTML
// body, and attachments read by value from disk. Build produces the raw
// base64url payload the provider's send and draft endpoints accept, using
// the go-message mail writer for header encoding, multipart structure, and
// transfer encodings.
package message
