package apiclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/justsurfingit/job-board/internal/dtos"
)

// Login exchanges credentials for a token. Credentials are never logged.
func (c *Client) Login(ctx context.Context, username, password string) (*dtos.Envelope[dtos.LoginResponse], error) {
	payload := dtos.LoginRequest{Username: username, Password: password}
	req, err := c.jsonRequest(ctx, http.MethodPost, "/auth/login", payload, noAuth)
	if err != nil {
		return nil, err
	}
	return do[dtos.LoginResponse](c, req)
}

// Logout revokes the token currently held by the token source.
func (c *Client) Logout(ctx context.Context) (*dtos.Envelope[json.RawMessage], error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/logout", nil, nil, "", withAuth)
	if err != nil {
		return nil, err
	}
	return do[json.RawMessage](c, req)
}
