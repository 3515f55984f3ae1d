package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/knowsuchagency/gmailcli/internal/logging"
)

func newUpdateDraftCmd() *cobra.Command {
	flags := &messageFlags{}
	var label, draftID string

	cmd := &cobra.Command{
		Use:   "update-draft",
		Short: "Replace the content of an existing draft",
		Long: `Rebuild the message from the flags and replace the draft's content
wholesale. The draft is addressed by --label (local store) or --draft-id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (label == "") == (draftID == "") {
				return fmt.Errorf("exactly one of --label or --draft-id must be provided")
			}

			prepared, err := flags.prepare()
			if err != nil {
				return err
			}

			id := draftID
			if label != "" {
				id, err = openDraftStore().Get(label)
				if err != nil {
					return err
				}
			}

			client, err := newGmailClient(cmd.Context())
			if err != nil {
				return err
			}

			raw, err := flags.finalize(cmd, client, prepared)
			if err != nil {
				return err
			}

			if err := client.UpdateDraft(id, raw); err != nil {
				return fmt.Errorf("updating draft %s: %w", id, err)
			}

			slog.Info("draft updated",
				logging.Command("update-draft"),
				logging.DraftID(id))
			cmd.Printf("Draft %s updated.\n", id)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&label, "label", "", "Local label of the draft to update")
	cmd.Flags().StringVar(&draftID, "draft-id", "", "Provider draft id to update")
	return cmd
}
