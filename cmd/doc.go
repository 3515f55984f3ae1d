// Package cmd implements the command-line interface for gmailcli.
//
// This package provides the following commands:
//   - send: Build a message and submit it immediately
//   - draft: Build a message and store it as a provider draft under a local label
//   - list-drafts: List provider drafts and local label mappings
//   - update-draft: Replace the content of an existing draft
//   - send-draft: Submit an existing draft
//   - auth: Run the interactive authorization flow and persist the token
//   - version: Display version information
package cmd
