// Package clerk is a minimal client for the Clerk backend API,
// covering only what this system calls.
package clerk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	xe "github.com/bandq-jp/hirelog/pkg/errors"
)

const DefaultBaseURL = "https://api.clerk.com"

type Client struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func New(secretKey string, options ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		secretKey: secretKey,
		client:    http.DefaultClient,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// InvitationMetadata is stamped onto the invited user and comes back
// in their session tokens.
type InvitationMetadata struct {
	Role      string `json:"role"`
	CompanyId string `json:"company_id"`
}

type InvitationRequest struct {
	EmailAddress   string             `json:"email_address"`
	RedirectUrl    string             `json:"redirect_url"`
	PublicMetadata InvitationMetadata `json:"public_metadata"`
	Notify         bool               `json:"notify"`
}

type Invitation struct {
	Id           string `json:"id"`
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

// CreateInvitation asks Clerk to mail an invitation.
func (c *Client) CreateInvitation(ctx context.Context, req InvitationRequest) (*Invitation, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/invitations", bytes.NewReader(payload),
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	defer resp.Body.Close()

	if 400 <= resp.StatusCode {
		body, _ := io.ReadAll(resp.Body)
		return nil, xe.Wrap(fmt.Errorf(
			"failed to create invitation: %s: %s", resp.Status, string(body),
		))
	}

	invitation := Invitation{}
	if err := json.NewDecoder(resp.Body).Decode(&invitation); err != nil {
		return nil, xe.Wrap(err)
	}
	return &invitation, nil
}
