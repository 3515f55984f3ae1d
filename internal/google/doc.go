// Package google provides OAuth2 authentication and token persistence for
// the Gmail API.
//
// The Authenticator implements the credential lifecycle: a persisted token is
// loaded and validated, an expired token is refreshed through the oauth2
// token source, and a rejected refresh falls back to the interactive
// authorization flow (auth URL printed, code read from stdin). The resulting
// token is persisted in the oauth2 JSON schema for the next invocation.
package google
