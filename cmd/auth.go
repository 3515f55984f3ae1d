package cmd

import (
	"github.com/spf13/cobra"

	"github.com/knowsuchagency/gmailcli/internal/google"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Run the interactive authorization flow",
		Long: `Request a new OAuth token interactively and persist it, replacing any
stored token. Useful after changing accounts or when the stored token has
been revoked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			auth := google.NewAuthenticator(cfg, nil)
			if err := auth.Authorize(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("Authorization successful. Token saved to %s\n", cfg.TokenFile)
			return nil
		},
	}
}
