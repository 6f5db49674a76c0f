// Package media talks to the media CDN's admin API. The backend never
// uploads through it (clients upload directly); the only operation here is
// delete-by-identifier, shared by the sweep, the delete hook and the
// explicit delete endpoint so the idempotence contract lives in one place.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"famchat/internal/domain"
)

// Cleaner deletes one external media object. Implementations must treat a
// missing object as success: the sweep and the delete hook will sometimes
// both fire for the same resource, and the second attempt is a no-op.
type Cleaner interface {
	Delete(ctx context.Context, externalID string, kind domain.MediaKind) error
}

const requestTimeout = 10 * time.Second

// CDNCleaner implements Cleaner against a Cloudinary-style admin API:
// a signed POST to /{cloud}/{kind}/destroy keyed by the public identifier.
type CDNCleaner struct {
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	client    *http.Client
}

func NewCDNCleaner(baseURL, cloudName, apiKey, apiSecret string) *CDNCleaner {
	return &CDNCleaner{
		baseURL:   strings.TrimRight(baseURL, "/"),
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Delete removes the object identified by (externalID, kind). A "not found"
// reply counts as success; anything else non-OK is returned as an error for
// the caller to log.
func (c *CDNCleaner) Delete(ctx context.Context, externalID string, kind domain.MediaKind) error {
	if externalID == "" {
		return nil
	}

	ts := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", externalID)
	form.Set("timestamp", ts)
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(externalID, ts))

	endpoint := fmt.Sprintf("%s/%s/%s/destroy", c.baseURL, c.cloudName, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("media delete: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("media delete %s/%s: %w", kind, externalID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media delete %s/%s: unexpected status %d", kind, externalID, resp.StatusCode)
	}

	var body destroyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("media delete %s/%s: decode response: %w", kind, externalID, err)
	}

	switch body.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("media delete %s/%s: result %q", kind, externalID, body.Result)
	}
}

// sign builds the request signature the admin API expects:
// sha1 over the sorted form fields plus the API secret.
func (c *CDNCleaner) sign(publicID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.apiSecret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
