package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
)

// SubmitContact sends a contact form. It never carries a session token.
func (c *Client) SubmitContact(ctx context.Context, msg dtos.ContactRequest) (*dtos.Envelope[models.ContactMessage], error) {
	if err := dtos.Validate(msg); err != nil {
		return nil, err
	}
	req, err := c.jsonRequest(ctx, http.MethodPost, "/contact", msg, noAuth)
	if err != nil {
		return nil, err
	}
	return do[models.ContactMessage](c, req)
}

// ListContactMessages lists received messages. Requires an admin session.
func (c *Client) ListContactMessages(ctx context.Context, filters dtos.MessageFilters) (*dtos.Envelope[[]models.ContactMessage], error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/contact", filters.Query(), nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	env, err := do[json.RawMessage](c, req)
	if err != nil {
		return nil, err
	}
	msgs, err := decodeList[models.ContactMessage](env.Data, "messages")
	if err != nil {
		return nil, err
	}
	return withData(env, msgs), nil
}

// MarkMessageRead flags a message as read. Requires an admin session.
func (c *Client) MarkMessageRead(ctx context.Context, id int) (*dtos.Envelope[models.ContactMessage], error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/contact/%d/read", id), nil, nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	return do[models.ContactMessage](c, req)
}
