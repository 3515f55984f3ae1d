// Package config resolves the credential configuration for a single
// invocation by merging command-line flags, the JSON config file under
// ~/.config/gmailcli/, environment variables, and built-in defaults.
//
// Precedence, highest first: CLI flag, config file, environment, default.
// The OAuth credentials file path is accepted from the command line only.
package config
