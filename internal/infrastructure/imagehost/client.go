package imagehost

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"resty.dev/v3"

	"salesdesk/admin-api/internal/utils/httpclients"
	"salesdesk/admin-api/internal/utils/platformerrors"
)

// MaxUploadBytes is the upload size ceiling enforced before any network call.
const MaxUploadBytes = 5 * 1024 * 1024

// Asset is the image host's view of one uploaded image.
type Asset struct {
	Name      string    `json:"name"`
	PublicID  string    `json:"public_id"`
	SecureURL string    `json:"secure_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Client talks to a Cloudinary-style image API. Every mutating request is
// signed with an HMAC-SHA1 over the sorted parameter string.
type Client struct {
	http      *resty.Client
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	now       func() time.Time
}

func NewClient(baseURL, cloudName, apiKey, apiSecret, folder string) *Client {
	return &Client{
		http:      httpclients.NewClient("imagehost", 30*time.Second),
		baseURL:   strings.TrimRight(baseURL, "/"),
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		now:       time.Now,
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizePublicID lower-cases a file name and collapses every run of
// non-alphanumeric characters to a single hyphen.
func SanitizePublicID(name string) string {
	sanitized := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(sanitized, "-")
}

// sign produces the request signature: HMAC-SHA1 over the parameters sorted
// by key and joined as key=value pairs, keyed by the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	mac := hmac.New(sha1.New, []byte(c.apiSecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) signedForm(params map[string]string) map[string]string {
	params["timestamp"] = strconv.FormatInt(c.now().Unix(), 10)
	params["signature"] = c.sign(params)
	params["api_key"] = c.apiKey
	return params
}

// ValidateUpload rejects anything that is not a JPEG of at most 5 MiB. The
// content type is sniffed from the bytes, never trusted from the caller.
func ValidateUpload(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation, "image data is empty", nil)
	}
	if len(data) > MaxUploadBytes {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation, "image exceeds the 5 MiB upload limit", nil)
	}
	if detected := mimetype.Detect(data); !detected.Is("image/jpeg") {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			fmt.Sprintf("only JPEG images are accepted, got %s", detected.String()), nil)
	}
	return nil
}

// Upload validates and pushes image bytes, returning the stored asset.
func (c *Client) Upload(ctx context.Context, fileName string, data []byte) (*Asset, error) {
	if err := ValidateUpload(ctx, data); err != nil {
		return nil, err
	}

	publicID := SanitizePublicID(strings.TrimSuffix(fileName, ".jpg"))
	if publicID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation, "file name yields an empty public id", nil)
	}

	form := c.signedForm(map[string]string{
		"public_id": publicID,
		"folder":    c.folder,
	})

	var result assetResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", fileName, bytes.NewReader(data)).
		SetFormData(form).
		SetResult(&result).
		Post(fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName))
	if err != nil {
		return nil, c.upstreamError(ctx, err, "image upload failed")
	}
	if resp.IsError() {
		return nil, c.statusError(ctx, resp.StatusCode(), "image upload")
	}
	return result.toAsset(), nil
}

// List returns every asset in the configured folder.
func (c *Client) List(ctx context.Context) ([]Asset, error) {
	var result struct {
		Resources []assetResponse `json:"resources"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.apiKey, c.apiSecret).
		SetQueryParam("prefix", c.folder).
		SetResult(&result).
		Get(fmt.Sprintf("%s/%s/resources/image", c.baseURL, c.cloudName))
	if err != nil {
		return nil, c.upstreamError(ctx, err, "image list failed")
	}
	if resp.IsError() {
		return nil, c.statusError(ctx, resp.StatusCode(), "image list")
	}

	assets := make([]Asset, 0, len(result.Resources))
	for _, res := range result.Resources {
		assets = append(assets, *res.toAsset())
	}
	return assets, nil
}

// Delete removes an asset by its provider-assigned public identifier.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	form := c.signedForm(map[string]string{"public_id": publicID})

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		Post(fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName))
	if err != nil {
		return c.upstreamError(ctx, err, "image delete failed")
	}
	if resp.IsError() {
		return c.statusError(ctx, resp.StatusCode(), "image delete")
	}
	return nil
}

// Rename re-keys an asset. The target id goes through the same sanitizer as
// uploads so renames cannot mint unsanitized identifiers.
func (c *Client) Rename(ctx context.Context, fromPublicID, toName string) (*Asset, error) {
	toPublicID := SanitizePublicID(toName)
	if toPublicID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation, "target name yields an empty public id", nil)
	}

	form := c.signedForm(map[string]string{
		"from_public_id": fromPublicID,
		"to_public_id":   toPublicID,
	})

	var result assetResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&result).
		Post(fmt.Sprintf("%s/%s/image/rename", c.baseURL, c.cloudName))
	if err != nil {
		return nil, c.upstreamError(ctx, err, "image rename failed")
	}
	if resp.IsError() {
		return nil, c.statusError(ctx, resp.StatusCode(), "image rename")
	}
	return result.toAsset(), nil
}

type assetResponse struct {
	PublicID         string    `json:"public_id"`
	SecureURL        string    `json:"secure_url"`
	OriginalFilename string    `json:"original_filename"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r assetResponse) toAsset() *Asset {
	name := r.OriginalFilename
	if name == "" {
		name = r.PublicID
	}
	return &Asset{
		Name:      name,
		PublicID:  r.PublicID,
		SecureURL: r.SecureURL,
		CreatedAt: r.CreatedAt,
	}
}

func (c *Client) upstreamError(ctx context.Context, err error, message string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeUpstream, message, err)
}

func (c *Client) statusError(ctx context.Context, status int, op string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeUpstream, fmt.Sprintf("%s returned %d", op, status), nil)
}
