package message

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	gomail "github.com/emersion/go-message/mail"
)

const (
	// MaxAttachmentSize caps a single attachment at 25MB, the provider's
	// own limit for standard messages.
	MaxAttachmentSize = 25 * 1024 * 1024

	fallbackMIMEType = "application/octet-stream"
)

// Attachment is a file embedded by value into a message.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// LoadAttachment reads a file from disk into an Attachment. It fails fast on
// a missing or unreadable path so the error surfaces before any network call.
func LoadAttachment(path string) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("attachment file not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("attachment %s is a directory", path)
	}
	if info.Size() > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment %s exceeds the %dMB limit", path, MaxAttachmentSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment %s: %w", path, err)
	}

	return &Attachment{
		Filename: filepath.Base(path),
		MIMEType: detectMIMEType(path),
		Data:     data,
	}, nil
}

// detectMIMEType guesses a content type from the file extension.
func detectMIMEType(path string) string {
	t := mime.TypeByExtension(filepath.Ext(path))
	if t == "" {
		return fallbackMIMEType
	}
	// TypeByExtension may carry parameters (charset); keep just the type.
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return fallbackMIMEType
	}
	return mediaType
}

// Message holds everything needed to assemble one outgoing mail. It is built
// once and submitted once; the builder does not mutate it.
type Message struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	HTMLBody    string
	Attachments []*Attachment
}

// Validate checks the minimal invariants before assembly.
func (m *Message) Validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if m.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if m.HTMLBody == "" {
		return fmt.Errorf("body is required")
	}
	return nil
}

// Build assembles the MIME message and returns it in the base64url form the
// provider's API expects in the raw field.
//
// Without attachments the result is a single text/html part; with them it is
// multipart/mixed with the HTML part inline and each attachment base64
// encoded under a content-disposition of attachment. Header encoding
// (RFC 2047 subjects, address lists, Message-Id, Date) is handled by the
// mail writer.
func (m *Message) Build() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	var h gomail.Header
	h.SetDate(time.Now())
	h.SetSubject(m.Subject)
	h.SetAddressList("From", addresses(m.From))
	h.SetAddressList("To", addresses(m.To...))
	if len(m.Cc) > 0 {
		h.SetAddressList("Cc", addresses(m.Cc...))
	}
	if len(m.Bcc) > 0 {
		h.SetAddressList("Bcc", addresses(m.Bcc...))
	}
	if err := h.GenerateMessageID(); err != nil {
		return "", fmt.Errorf("generating message id: %w", err)
	}

	var buf bytes.Buffer
	if len(m.Attachments) == 0 {
		if err := m.writeSingle(&buf, h); err != nil {
			return "", err
		}
	} else {
		if err := m.writeMultipart(&buf, h); err != nil {
			return "", err
		}
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

func (m *Message) writeSingle(buf *bytes.Buffer, h gomail.Header) error {
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	w, err := gomail.CreateSingleInlineWriter(buf, h)
	if err != nil {
		return fmt.Errorf("creating message writer: %w", err)
	}
	if _, err := io.WriteString(w, m.HTMLBody); err != nil {
		return fmt.Errorf("writing body: %w", err)
	}
	return w.Close()
}

func (m *Message) writeMultipart(buf *bytes.Buffer, h gomail.Header) error {
	mw, err := gomail.CreateWriter(buf, h)
	if err != nil {
		return fmt.Errorf("creating message writer: %w", err)
	}

	var th gomail.InlineHeader
	th.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	tw, err := mw.CreateSingleInline(th)
	if err != nil {
		return fmt.Errorf("creating body part: %w", err)
	}
	if _, err := io.WriteString(tw, m.HTMLBody); err != nil {
		return fmt.Errorf("writing body: %w", err)
	}
	if err := tw.Close(); err != nil {
		return err
	}

	for _, att := range m.Attachments {
		var ah gomail.AttachmentHeader
		ah.SetFilename(att.Filename)
		ah.SetContentType(att.MIMEType, nil)
		aw, err := mw.CreateAttachment(ah)
		if err != nil {
			return fmt.Errorf("creating attachment part %s: %w", att.Filename, err)
		}
		if _, err := aw.Write(att.Data); err != nil {
			return fmt.Errorf("writing attachment %s: %w", att.Filename, err)
		}
		if err := aw.Close(); err != nil {
			return err
		}
	}

	return mw.Close()
}

// AppendSignature glues the fetched signature block onto a body. Both sides
// of the plaintext/HTML split keep the conventional "-- " separator spirit of
// the provider's own composer: two blank lines between body and signature.
func AppendSignature(body, signature string, html bool) string {
	if signature == "" {
		return body
	}
	if html {
		return body + "<br><br>" + signature
	}
	return body + "\n\n" + signature
}

func addresses(addrs ...string) []*gomail.Address {
	out := make([]*gomail.Address, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, &gomail.Address{Address: a})
	}
	return out
}
