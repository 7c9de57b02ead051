// Package deliver posts serialized activities to the remote social-activity
// service.
package deliver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gitea.jw6.us/james/oxstream/internal/activity"
)

const activityStreamsPath = "social/rest/activitystreams/"

// Client sends activities to the activity service for a given user identity.
// The client carries no timeout: a hung connection blocks the dispatching
// goroutine for that one event. Retry and backoff are out of scope.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a delivery client for the given activity service base URL.
func NewClient(baseURL string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Send serializes the activity and posts it to the user's activity stream.
// The response body is discarded; any readable response counts as success.
func (c *Client) Send(ctx context.Context, act *activity.Activity, userLogin string) error {
	body, err := json.Marshal(act)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	endpoint := c.baseURL + activityStreamsPath + url.PathEscape(userLogin) + "/@self"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post activity for %s: %w", userLogin, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("post activity for %s: status %d", userLogin, resp.StatusCode)
	}
	return nil
}
