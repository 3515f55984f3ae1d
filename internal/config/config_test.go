package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestResolveFromConfigFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"client_id": "id-from-file",
		"client_secret": "secret-from-file",
		"token_file": "/tmp/token.json"
	}`)

	cfg, err := Resolve(Overrides{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "id-from-file", cfg.ClientID)
	assert.Equal(t, "secret-from-file", cfg.ClientSecret)
	assert.Equal(t, "/tmp/token.json", cfg.TokenFile)
}

func TestResolveFlagBeatsConfigFile(t *testing.T) {
	path := writeConfigFile(t, `{"client_id": "id-from-file"}`)

	cfg, err := Resolve(Overrides{
		ConfigFile: path,
		ClientID:   "id-from-flag",
		TokenFile:  "/tmp/other.json",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-from-flag", cfg.ClientID)
	assert.Equal(t, "/tmp/other.json", cfg.TokenFile)
}

func TestResolveEnvBeatsConfigFile(t *testing.T) {
	path := writeConfigFile(t, `{"client_id": "id-from-file"}`)
	t.Setenv("GMAILCLI_CLIENT_ID", "id-from-env")

	cfg, err := Resolve(Overrides{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "id-from-env", cfg.ClientID)
}

func TestResolveTokenFileDefault(t *testing.T) {
	path := writeConfigFile(t, `{}`)

	cfg, err := Resolve(Overrides{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenFile(), cfg.TokenFile)
}

func TestResolveMissingExplicitConfigFile(t *testing.T) {
	_, err := Resolve(Overrides{ConfigFile: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestResolveMalformedConfigFile(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	_, err := Resolve(Overrides{ConfigFile: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(credFile, []byte(`{}`), 0600))

	tests := []struct {
		name        string
		cfg         Config
		wantErr     bool
		errContains string
	}{
		{
			name: "credentials file",
			cfg:  Config{CredentialsFile: credFile},
		},
		{
			name: "client id and secret",
			cfg:  Config{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name:        "nothing configured",
			cfg:         Config{},
			wantErr:     true,
			errContains: "authentication configuration missing",
		},
		{
			name:        "client id without secret",
			cfg:         Config{ClientID: "id"},
			wantErr:     true,
			errContains: "authentication configuration missing",
		},
		{
			name:        "credentials file does not exist",
			cfg:         Config{CredentialsFile: "/nonexistent/credentials.json"},
			wantErr:     true,
			errContains: "credentials file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}

func TestUsesCredentialsFile(t *testing.T) {
	assert.True(t, (&Config{CredentialsFile: "/some/file.json", ClientID: "id", ClientSecret: "s"}).UsesCredentialsFile())
	assert.False(t, (&Config{ClientID: "id", ClientSecret: "s"}).UsesCredentialsFile())
}

func TestDirHonorsXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "gmailcli"), Dir())
	assert.Equal(t, filepath.Join(dir, "gmailcli", "config.json"), DefaultConfigFile())
	assert.Equal(t, filepath.Join(dir, "gmailcli", "token.json"), DefaultTokenFile())
	assert.Equal(t, filepath.Join(dir, "gmailcli", "drafts.json"), DefaultDraftStoreFile())
}
