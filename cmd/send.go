package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/knowsuchagency/gmailcli/internal/logging"
)

func newSendCmd() *cobra.Command {
	flags := &messageFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Build a message and send it immediately",
		Long: `Convert the body to HTML, assemble the MIME message with any
attachments and your Gmail signature, and submit it through the Gmail API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prepared, err := flags.prepare()
			if err != nil {
				return err
			}

			client, err := newGmailClient(cmd.Context())
			if err != nil {
				return err
			}

			raw, err := flags.finalize(cmd, client, prepared)
			if err != nil {
				return err
			}

			id, err := client.Send(raw)
			if err != nil {
				return fmt.Errorf("sending message: %w", err)
			}

			slog.Info("message sent",
				logging.Command("send"),
				logging.Status(logging.StatusSuccess),
				logging.UserHash(prepared.msg.From))
			cmd.Printf("Message sent. ID: %s\n", id)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
