package gmail

import (
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
)

// DraftSummary is the listing view of a provider draft.
type DraftSummary struct {
	ID      string
	Subject string
	To      string
}

// CreateDraft creates a provider draft from a raw base64url message and
// returns its id.
func (c *Client) CreateDraft(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("raw message is required")
	}
	draft, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: raw},
	}).Do()
	if err != nil {
		return "", friendlyAPIError(err)
	}
	return draft.Id, nil
}

// UpdateDraft replaces the message of an existing draft. The provider swaps
// the whole message resource, so the draft afterwards reflects exactly the
// new content.
func (c *Client) UpdateDraft(draftID, raw string) error {
	if draftID == "" {
		return fmt.Errorf("draft id is required")
	}
	if raw == "" {
		return fmt.Errorf("raw message is required")
	}
	_, err := c.svc.Drafts.Update("me", draftID, &gmail.Draft{
		Message: &gmail.Message{Raw: raw},
	}).Do()
	if err != nil {
		return friendlyAPIError(err)
	}
	return nil
}

// SendDraft submits an existing draft and returns the resulting message id.
// The draft id is invalid for further operations once sent.
func (c *Client) SendDraft(draftID string) (string, error) {
	if draftID == "" {
		return "", fmt.Errorf("draft id is required")
	}
	sent, err := c.svc.Drafts.Send("me", &gmail.Draft{Id: draftID}).Do()
	if err != nil {
		return "", friendlyAPIError(err)
	}
	return sent.Id, nil
}

// ListDrafts returns up to maxResults drafts with subject and recipients
// resolved from the message metadata. Pagination is handled internally.
func (c *Client) ListDrafts(maxResults int64) ([]*DraftSummary, error) {
	var ids []string
	pageToken := ""
	for {
		remaining := maxResults - int64(len(ids))
		if remaining <= 0 {
			break
		}
		pageSize := remaining
		if pageSize > 100 {
			pageSize = 100
		}

		req := c.svc.Drafts.List("me").MaxResults(pageSize)
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}
		res, err := req.Do()
		if err != nil {
			return nil, friendlyAPIError(err)
		}
		for _, d := range res.Drafts {
			ids = append(ids, d.Id)
		}
		if res.NextPageToken == "" || int64(len(ids)) >= maxResults {
			break
		}
		pageToken = res.NextPageToken
	}
	if int64(len(ids)) > maxResults {
		ids = ids[:maxResults]
	}

	summaries := make([]*DraftSummary, 0, len(ids))
	for _, id := range ids {
		draft, err := c.svc.Drafts.Get("me", id).Format("metadata").Do()
		if err != nil {
			return nil, friendlyAPIError(err)
		}
		s := &DraftSummary{ID: id}
		if draft.Message != nil && draft.Message.Payload != nil {
			s.Subject = headerValue(draft.Message, "Subject")
			s.To = headerValue(draft.Message, "To")
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// DraftExists checks whether a draft id is still known to the provider.
func (c *Client) DraftExists(draftID string) (bool, error) {
	_, err := c.svc.Drafts.Get("me", draftID).Format("minimal").Do()
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, friendlyAPIError(err)
	}
	return true, nil
}

// headerValue returns the value of a payload header, or "".
func headerValue(msg *gmail.Message, name string) string {
	for _, h := range msg.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}
