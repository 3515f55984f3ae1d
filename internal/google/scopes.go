package google

import (
	gmail "google.golang.org/api/gmail/v1"
)

// DefaultOAuthScopes are the Gmail scopes the tool requests.
//
// The scopes provide access to:
//   - sending mail
//   - creating, updating, and sending drafts
//   - reading the profile (sender address)
//   - basic settings (the send-as signature)
//
// Changing this list invalidates previously stored tokens; the tool falls
// back to the interactive flow when that happens.
var DefaultOAuthScopes = []string{
	gmail.GmailSendScope,
	gmail.GmailComposeScope,
	gmail.GmailReadonlyScope,
	gmail.GmailSettingsBasicScope,
}
