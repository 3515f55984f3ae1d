package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/knowsuchagency/gmailcli/internal/logging"
)

func newSendDraftCmd() *cobra.Command {
	var label, draftID string

	cmd := &cobra.Command{
		Use:   "send-draft",
		Short: "Submit an existing draft",
		Long: `Send a draft addressed by --label (local store) or --draft-id. After a
successful send the draft id is invalid, so any labels pointing at it are
removed from the local store.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (label == "") == (draftID == "") {
				return fmt.Errorf("exactly one of --label or --draft-id must be provided")
			}

			id := draftID
			if label != "" {
				var err error
				id, err = openDraftStore().Get(label)
				if err != nil {
					return err
				}
			}

			client, err := newGmailClient(cmd.Context())
			if err != nil {
				return err
			}

			msgID, err := client.SendDraft(id)
			if err != nil {
				return fmt.Errorf("sending draft %s: %w", id, err)
			}

			if err := openDraftStore().DeleteByID(id); err != nil {
				cmd.PrintErrf("Warning: draft sent but the label could not be removed: %v\n", err)
			}

			slog.Info("draft sent",
				logging.Command("send-draft"),
				logging.DraftID(id),
				logging.Status(logging.StatusSuccess))
			cmd.Printf("Draft sent. Message ID: %s\n", msgID)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Local label of the draft to send")
	cmd.Flags().StringVar(&draftID, "draft-id", "", "Provider draft id to send")
	return cmd
}
