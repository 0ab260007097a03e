package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"resty.dev/v3"

	"salesdesk/admin-api/internal/utils/httpclients"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

const contactsCacheKey = "contacts"

// Contact is the vendor's view of a WhatsApp contact.
type Contact struct {
	WaID          string `json:"wa_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// Client talks to the third-party WhatsApp send/contact API. The vendor
// authenticates twice: a bearer token header plus a token query parameter.
// Contact listings are cached for a short staleness window; concurrent
// refreshes are harmless since the last write wins.
type Client struct {
	http       *resty.Client
	baseURL    string
	queryToken string
	contacts   *expirable.LRU[string, []Contact]
}

func NewClient(baseURL, bearerToken, queryToken string, cacheTTL time.Duration) *Client {
	client := httpclients.NewClient("whatsapp", 30*time.Second)
	client.SetHeader("Authorization", "Bearer "+bearerToken)
	return &Client{
		http:       client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		queryToken: queryToken,
		contacts:   expirable.NewLRU[string, []Contact](4, nil, cacheTTL),
	}
}

// SendMessage delivers one text message to a contact.
func (c *Client) SendMessage(ctx context.Context, to, message string) error {
	resp, err := c.request(ctx).
		SetBody(map[string]string{"to": to, "message": message}).
		Post(c.baseURL + "/messages")
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, "whatsapp send failed", err)
	}
	if resp.IsError() {
		return c.statusError(ctx, resp.StatusCode(), "whatsapp send")
	}
	return nil
}

// GetContacts lists the vendor's contacts, served from cache within the
// staleness window.
func (c *Client) GetContacts(ctx context.Context) ([]Contact, error) {
	if cached, ok := c.contacts.Get(contactsCacheKey); ok {
		return cached, nil
	}

	var result struct {
		Contacts []Contact `json:"contacts"`
	}
	resp, err := c.request(ctx).
		SetResult(&result).
		Get(c.baseURL + "/contacts")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, "whatsapp contacts fetch failed", err)
	}
	if resp.IsError() {
		return nil, c.statusError(ctx, resp.StatusCode(), "whatsapp contacts fetch")
	}

	c.contacts.Add(contactsCacheKey, result.Contacts)
	return result.Contacts, nil
}

// GetContact fetches one contact by its vendor id.
func (c *Client) GetContact(ctx context.Context, id string) (*Contact, error) {
	var contact Contact
	resp, err := c.request(ctx).
		SetResult(&contact).
		Get(fmt.Sprintf("%s/contacts/%s", c.baseURL, id))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeUpstream, "whatsapp contact fetch failed", err)
	}
	if resp.StatusCode() == 404 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeNotFound, fmt.Sprintf("contact %q not found", id), nil)
	}
	if resp.IsError() {
		return nil, c.statusError(ctx, resp.StatusCode(), "whatsapp contact fetch")
	}
	return &contact, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.queryToken != "" {
		req.SetQueryParam("token", c.queryToken)
	}
	return req
}

func (c *Client) statusError(ctx context.Context, status int, op string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeUpstream, fmt.Sprintf("%s returned %d", op, status), nil)
}
