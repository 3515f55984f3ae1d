package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Keys that may be supplied through the config file. The credentials file is
// deliberately CLI-only so that a shared config file can never point the tool
// at an unexpected client-secret download.
const (
	KeyClientID     = "client_id"
	KeyClientSecret = "client_secret"
	KeyTokenFile    = "token_file"
)

// Config is the fully resolved credential configuration for one invocation.
type Config struct {
	// CredentialsFile is the path to a downloaded OAuth client-secret JSON
	// file. Takes precedence over ClientID/ClientSecret when both are set.
	CredentialsFile string

	// ClientID and ClientSecret identify the OAuth client directly,
	// without a client-secret file.
	ClientID     string
	ClientSecret string

	// TokenFile is where the OAuth token is persisted between runs.
	TokenFile string
}

// Overrides carries the values supplied on the command line. Empty fields
// fall through to the config file, the environment, and finally defaults.
type Overrides struct {
	ConfigFile      string
	CredentialsFile string
	TokenFile       string
	ClientID        string
	ClientSecret    string
}

// Dir returns the configuration directory, ~/.config/gmailcli on
// XDG-style systems.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gmailcli")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".gmailcli")
	}
	return filepath.Join(home, ".config", "gmailcli")
}

// DefaultConfigFile returns the default config file path.
func DefaultConfigFile() string {
	return filepath.Join(Dir(), "config.json")
}

// DefaultTokenFile returns the default token file path.
func DefaultTokenFile() string {
	return filepath.Join(Dir(), "token.json")
}

// DefaultDraftStoreFile returns the default path of the local draft label store.
func DefaultDraftStoreFile() string {
	return filepath.Join(Dir(), "drafts.json")
}

// EnsureDir creates the configuration directory if it does not exist yet.
// The directory holds token material, so it is created 0700.
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0700); err != nil {
		return fmt.Errorf("cannot create configuration directory %s: %w", Dir(), err)
	}
	return nil
}

// Resolve merges CLI overrides, environment variables (GMAILCLI_CLIENT_ID
// etc.), the JSON config file and built-in defaults into a single Config.
// Precedence, highest first: CLI flag, environment, config file, default.
func Resolve(o Overrides) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("gmailcli")
	v.AutomaticEnv()

	v.SetDefault(KeyTokenFile, DefaultTokenFile())

	path := o.ConfigFile
	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; a missing explicit one,
		// or a file that fails to parse, is not.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if explicit || !(notFound || os.IsNotExist(err)) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		CredentialsFile: o.CredentialsFile,
		ClientID:        v.GetString(KeyClientID),
		ClientSecret:    v.GetString(KeyClientSecret),
		TokenFile:       v.GetString(KeyTokenFile),
	}

	if o.ClientID != "" {
		cfg.ClientID = o.ClientID
	}
	if o.ClientSecret != "" {
		cfg.ClientSecret = o.ClientSecret
	}
	if o.TokenFile != "" {
		cfg.TokenFile = o.TokenFile
	}

	return cfg, nil
}

// Validate checks that the resolved configuration carries a usable
// authentication method.
func (c *Config) Validate() error {
	hasFile := false
	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); err != nil {
			return fmt.Errorf("credentials file not found at %s", c.CredentialsFile)
		}
		hasFile = true
	}
	hasClient := c.ClientID != "" && c.ClientSecret != ""

	if !hasFile && !hasClient {
		return fmt.Errorf("authentication configuration missing: provide either " +
			"--credentials-file, or --client-id and --client-secret " +
			"(the latter may also come from the config file or GMAILCLI_CLIENT_ID / GMAILCLI_CLIENT_SECRET)")
	}
	return nil
}

// UsesCredentialsFile reports whether the credentials file method wins.
// When both methods are configured, the credentials file takes precedence.
func (c *Config) UsesCredentialsFile() bool {
	return c.CredentialsFile != ""
}
