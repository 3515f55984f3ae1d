package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/knowsuchagency/gmailcli/internal/logging"
)

func newDraftCmd() *cobra.Command {
	flags := &messageFlags{}
	var label string

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Build a message and store it as a draft",
		Long: `Create a provider-side draft from the message and record its id in the
local label store, so it can later be updated or sent by label.`,
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

			id, err := client.CreateDraft(raw)
			if err != nil {
				return fmt.Errorf("creating draft: %w", err)
			}

			if err := openDraftStore().Put(label, id); err != nil {
				// The draft exists on the provider either way.
				cmd.PrintErrf("Warning: draft created (id %s) but the label could not be recorded: %v\n", id, err)
			}

			slog.Info("draft created",
				logging.Command("draft"),
				logging.DraftID(id),
				logging.Label(label))
			cmd.Printf("Draft created under label %q. ID: %s\n", label, id)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&label, "label", "", "Local label to record the draft under")
	cobra.CheckErr(cmd.MarkFlagRequired("label"))
	return cmd
}
