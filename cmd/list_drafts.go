package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListDraftsCmd() *cobra.Command {
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "list-drafts",
		Short: "List provider drafts and local label mappings",
		Long: `List the drafts known to the provider with subject and recipients, then
the local label mappings. A label whose draft id is no longer known to the
provider (sent or deleted outside this tool) is marked stale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxResults <= 0 {
				return fmt.Errorf("--max-results must be positive, got %d", maxResults)
			}

			client, err := newGmailClient(cmd.Context())
			if err != nil {
				return err
			}

			drafts, err := client.ListDrafts(maxResults)
			if err != nil {
				return fmt.Errorf("listing drafts: %w", err)
			}

			known := make(map[string]bool, len(drafts))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DRAFT ID\tTO\tSUBJECT")
			for _, d := range drafts {
				known[d.ID] = true
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.To, d.Subject)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			entries, err := openDraftStore().List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return nil
			}

			cmd.Println()
			w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tDRAFT ID\tSTATE")
			for _, e := range entries {
				state := "ok"
				if !known[e.DraftID] {
					// Not in the listed page; ask the provider directly
					// before calling it stale.
					exists, err := client.DraftExists(e.DraftID)
					if err != nil {
						return err
					}
					if !exists {
						state = "stale"
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Label, e.DraftID, state)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&maxResults, "max-results", 50, "Maximum number of drafts to list")
	return cmd
}
