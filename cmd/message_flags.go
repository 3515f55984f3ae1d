package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knowsuchagency/gmailcli/internal/gmail"
	"github.com/knowsuchagency/gmailcli/internal/logging"
	"github.com/knowsuchagency/gmailcli/internal/markup"
	"github.com/knowsuchagency/gmailcli/internal/message"
)

// messageFlags is the flag surface shared by send, draft, and update-draft.
type messageFlags struct {
	to          []string
	cc          []string
	bcc         []string
	subject     string
	body        string
	bodyFile    string
	inputFormat string
	attachments []string
	sender      string
	noSignature bool
}

func (f *messageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.to, "to", nil, "Recipient email address (repeatable)")
	cmd.Flags().StringArrayVar(&f.cc, "cc", nil, "CC email address (repeatable)")
	cmd.Flags().StringArrayVar(&f.bcc, "bcc", nil, "BCC email address (repeatable)")
	cmd.Flags().StringVar(&f.subject, "subject", "", "Message subject")
	cmd.Flags().StringVar(&f.body, "body", "", "Message body text")
	cmd.Flags().StringVar(&f.bodyFile, "body-file", "", "Read the message body from a file")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "markdown", "Body input format: markdown, html, or plaintext")
	cmd.Flags().StringArrayVar(&f.attachments, "attachment", nil, "File path to attach (repeatable)")
	cmd.Flags().StringVar(&f.sender, "sender", "", "Override the sender address (if permitted)")
	cmd.Flags().BoolVar(&f.noSignature, "no-signature", false, "Do not append the Gmail signature")

	cobra.CheckErr(cmd.MarkFlagRequired("to"))
	cobra.CheckErr(cmd.MarkFlagRequired("subject"))
}

// preparedMessage is the local, pre-network stage of a message: converted
// body and attachments read from disk, but no sender or signature yet.
type preparedMessage struct {
	format markup.Format
	msg    *message.Message
}

// prepare validates the flags, reads the body, converts it to HTML, and
// loads the attachments. Everything that can fail locally fails here,
// before authentication or any API call.
func (f *messageFlags) prepare() (*preparedMessage, error) {
	if f.body == "" && f.bodyFile == "" {
		return nil, fmt.Errorf("either --body or --body-file must be provided")
	}
	if f.body != "" && f.bodyFile != "" {
		return nil, fmt.Errorf("cannot specify both --body and --body-file")
	}

	format, err := markup.ParseFormat(f.inputFormat)
	if err != nil {
		return nil, err
	}

	body := f.body
	if f.bodyFile != "" {
		data, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return nil, fmt.Errorf("reading body file: %w", err)
		}
		body = string(data)
	}

	html, err := markup.ToHTML(format, body)
	if err != nil {
		return nil, err
	}

	var attachments []*message.Attachment
	for _, path := range f.attachments {
		att, err := message.LoadAttachment(path)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}

	return &preparedMessage{
		format: format,
		msg: &message.Message{
			From:        f.sender,
			To:          f.to,
			Cc:          f.cc,
			Bcc:         f.bcc,
			Subject:     f.subject,
			HTMLBody:    html,
			Attachments: attachments,
		},
	}, nil
}

// finalize completes a prepared message against the provider: the sender is
// resolved from the profile when not overridden, and the signature is
// fetched and appended unless disabled. It returns the raw base64url payload.
func (f *messageFlags) finalize(cmd *cobra.Command, client *gmail.Client, p *preparedMessage) (string, error) {
	if p.msg.From == "" {
		sender, err := client.Profile()
		if err != nil {
			return "", err
		}
		p.msg.From = sender
	}

	if !f.noSignature {
		signature, err := client.Signature()
		if err != nil {
			// A missing signature never blocks a send.
			cmd.PrintErrf("Warning: could not retrieve Gmail signature: %v\n", err)
			slog.Warn("signature fetch failed", logging.Err(err))
		} else if signature != "" {
			signature, err = f.renderSignature(cmd, p.format, signature)
			if err != nil {
				return "", err
			}
			p.msg.HTMLBody = message.AppendSignature(p.msg.HTMLBody, signature, true)
		}
	}

	return p.msg.Build()
}

// renderSignature adapts the provider's HTML signature to the body's input
// format. With plaintext input the signature is down-converted to text and
// re-escaped, which flattens links to "text (url)"; the user is warned and,
// on a terminal, asked to confirm.
func (f *messageFlags) renderSignature(cmd *cobra.Command, format markup.Format, signature string) (string, error) {
	if format != markup.FormatPlaintext {
		return signature, nil
	}

	cmd.PrintErrln("Warning: plaintext input with the Gmail signature enabled.")
	cmd.PrintErrln("The HTML signature will be converted to plain text; links become 'text (url)'.")
	cmd.PrintErrln("Consider --input-format markdown or --no-signature instead.")
	if isTerminal() && !confirm(cmd, "Continue with the converted signature?") {
		return "", fmt.Errorf("aborted")
	}

	text := markup.ToText(signature)
	return markup.ToHTML(markup.FormatPlaintext, text)
}

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// confirm asks a yes/no question on stderr and reads the answer from stdin.
func confirm(cmd *cobra.Command, prompt string) bool {
	cmd.PrintErrf("%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
