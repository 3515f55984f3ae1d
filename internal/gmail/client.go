package gmail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client wraps the Gmail Users service with the small surface the tool
// needs: send, draft management, profile, and the send-as signature.
type Client struct {
	svc *gmail.UsersService

	// signature caches the primary send-as signature for the invocation.
	signature    string
	sigRetrieved bool
}

// NewClient creates a Gmail client from an OAuth-authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating Gmail service: %w", err)
	}
	return &Client{svc: svc.Users}, nil
}

// Send submits a raw base64url message and returns the provider message id.
func (c *Client) Send(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("raw message is required")
	}
	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return "", friendlyAPIError(err)
	}
	return sent.Id, nil
}

// Profile returns the authenticated user's email address.
func (c *Client) Profile() (string, error) {
	profile, err := c.svc.GetProfile("me").Do()
	if err != nil {
		return "", fmt.Errorf("could not retrieve sender email: %w", friendlyAPIError(err))
	}
	return profile.EmailAddress, nil
}

// Signature fetches the signature of the primary send-as address. The result
// is cached for the invocation; an account without a signature yields "".
func (c *Client) Signature() (string, error) {
	if c.sigRetrieved {
		return c.signature, nil
	}

	res, err := c.svc.Settings.SendAs.List("me").Do()
	if err != nil {
		return "", fmt.Errorf("could not retrieve signature: %w", friendlyAPIError(err))
	}

	for _, sendAs := range res.SendAs {
		if sendAs.IsPrimary {
			c.signature = sendAs.Signature
			break
		}
	}
	c.sigRetrieved = true
	return c.signature, nil
}

// friendlyAPIError maps the provider's permission and quota failures to
// actionable messages; everything else is surfaced verbatim.
func friendlyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusForbidden:
		return fmt.Errorf("Gmail API access denied; check your OAuth consent and API permissions: %w", err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("Gmail API quota exceeded; try again later: %w", err)
	}
	return err
}

// isNotFound reports whether the provider answered 404 for a resource.
func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
