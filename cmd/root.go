package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knowsuchagency/gmailcli/internal/config"
	"github.com/knowsuchagency/gmailcli/internal/draftstore"
	"github.com/knowsuchagency/gmailcli/internal/gmail"
	"github.com/knowsuchagency/gmailcli/internal/google"
	"github.com/knowsuchagency/gmailcli/internal/logging"
)

// credential/config overrides shared by every subcommand
var (
	flagConfigFile      string
	flagCredentialsFile string
	flagTokenFile       string
	flagClientID        string
	flagClientSecret    string
	flagLogLevel        string
)

// rootCmd represents the base command for the gmailcli application
var rootCmd = &cobra.Command{
	Use:   "gmailcli",
	Short: "Send Gmail messages and manage drafts from the command line",
	Long: `gmailcli authenticates against the Gmail API with OAuth2, converts a
message body written in markdown, HTML, or plain text into a single HTML
document, assembles a MIME message with optional attachments and your Gmail
signature, and either sends it immediately or manages it as a draft.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(os.Stderr, flagLogLevel)
	},
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gmailcli version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigFile, "config-file", "", "Path to the JSON config file (default: ~/.config/gmailcli/config.json)")
	pf.StringVar(&flagCredentialsFile, "credentials-file", "", "Path to an OAuth client-secret JSON file (CLI only, never read from the config file)")
	pf.StringVar(&flagTokenFile, "token-file", "", "Path to store/read the OAuth token (default: ~/.config/gmailcli/token.json)")
	pf.StringVar(&flagClientID, "client-id", "", "OAuth client ID (flag, config file, or GMAILCLI_CLIENT_ID)")
	pf.StringVar(&flagClientSecret, "client-secret", "", "OAuth client secret (flag, config file, or GMAILCLI_CLIENT_SECRET)")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, or error")

	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newDraftCmd())
	rootCmd.AddCommand(newListDraftsCmd())
	rootCmd.AddCommand(newUpdateDraftCmd())
	rootCmd.AddCommand(newSendDraftCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// resolveConfig merges the persistent flags with the config file,
// environment, and defaults, and validates the result.
func resolveConfig() (*config.Config, error) {
	if err := config.EnsureDir(); err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(config.Overrides{
		ConfigFile:      flagConfigFile,
		CredentialsFile: flagCredentialsFile,
		TokenFile:       flagTokenFile,
		ClientID:        flagClientID,
		ClientSecret:    flagClientSecret,
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newGmailClient authenticates and returns a ready provider client.
func newGmailClient(ctx context.Context) (*gmail.Client, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	auth := google.NewAuthenticator(cfg, nil)
	httpClient, err := auth.HTTPClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	return gmail.NewClient(ctx, httpClient)
}

// openDraftStore returns the local label store.
func openDraftStore() *draftstore.Store {
	return draftstore.New(config.DefaultDraftStoreFile())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gmailcli version %s\n", version)
		},
	}
}
