package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"salesdesk/admin-api/internal/utils/httpclients"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// Client forwards admin actions to the external workflow engine's webhook,
// mapped to its REST-ish sub-paths. Responses are relayed verbatim.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(webhookURL, token string, timeout time.Duration) *Client {
	client := httpclients.NewClient("workflow", timeout)
	if token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}
	return &Client{
		http:    client,
		baseURL: strings.TrimRight(webhookURL, "/"),
	}
}

// SendMessagePayload is the exact body the workflow engine expects for an
// outbound message.
type SendMessagePayload struct {
	ContactUID string `json:"contact_uid"`
	Message    string `json:"message"`
}

// GetProducts fetches the product list known to the workflow engine.
func (c *Client) GetProducts(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/products")
}

// GetChats fetches the conversation summaries.
func (c *Client) GetChats(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/chats")
}

// GetChatMessages fetches the message history of one conversation.
func (c *Client) GetChatMessages(ctx context.Context, contactUID string) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/chats/%s/messages", contactUID))
}

// SendMessage asks the workflow engine to deliver a message to a contact.
func (c *Client) SendMessage(ctx context.Context, contactUID, message string) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(SendMessagePayload{ContactUID: contactUID, Message: message}).
		Post(c.baseURL + "/send-message")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, "workflow send-message failed", err)
	}
	return c.relay(ctx, resp)
}

func (c *Client) get(ctx context.Context, subPath string) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + subPath)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, fmt.Sprintf("workflow %s failed", subPath), err)
	}
	return c.relay(ctx, resp)
}

func (c *Client) relay(ctx context.Context, resp *resty.Response) (json.RawMessage, error) {
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream,
			fmt.Sprintf("workflow engine returned %d", resp.StatusCode()), nil)
	}
	body := resp.Bytes()
	if len(body) == 0 {
		return json.RawMessage(`null`), nil
	}
	if !json.Valid(body) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, "workflow engine returned non-JSON body", nil)
	}
	return json.RawMessage(body), nil
}
