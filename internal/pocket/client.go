// Package pocket talks to the Pocket v3 API: it fetches the complete saved
// item set, relays item actions one call per intent, and runs the token
// handshake. It also owns the mapper from the remote wire shape to the local
// article shape.
package pocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Action names understood by the /v3/send endpoint.
const (
	ActionArchive     = "archive"
	ActionReadd       = "readd"
	ActionFavorite    = "favorite"
	ActionUnfavorite  = "unfavorite"
	ActionDelete      = "delete"
	ActionTagsAdd     = "tags_add"
	ActionTagsRemove  = "tags_remove"
	ActionTagsReplace = "tags_replace"
	ActionTagDelete   = "tag_delete"
)

// Session supplies the bearer credential for authenticated calls. A call
// fails when no credential is available.
type Session interface {
	AccessToken() (string, error)
}

// RemoteError is a non-success response from the Pocket API.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pocket: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("pocket: unexpected status %d", e.StatusCode)
}

// Config holds client configuration.
type Config struct {
	BaseURL     string
	ConsumerKey string
	RedirectURI string
	Timeout     time.Duration
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	consumerKey string
	redirectURI string
	session     Session
	logger      *slog.Logger
}

func New(cfg Config, session Session, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		consumerKey: cfg.ConsumerKey,
		redirectURI: cfg.RedirectURI,
		session:     session,
		logger:      logger.With("component", "pocket"),
	}
}

// FetchAll retrieves the complete saved article set in one call. The order of
// the returned slice follows map iteration and is not stable across calls.
func (c *Client) FetchAll(ctx context.Context) ([]RemoteArticle, error) {
	body := map[string]any{
		"detailType":  "simple",
		"contentType": "article",
		"state":       "all",
	}

	var res getResponse
	if err := c.post(ctx, "/v3/get", body, true, &res); err != nil {
		return nil, err
	}

	items := make([]RemoteArticle, 0, len(res.List))
	for _, item := range res.List {
		items = append(items, item)
	}

	c.logger.Debug("fetched remote articles", "count", len(items))
	return items, nil
}

// SendAction relays one intent for one item. Params carry action-specific
// fields such as "tags".
func (c *Client) SendAction(ctx context.Context, action, itemID string, params map[string]any) error {
	entry := map[string]any{"action": action}
	if itemID != "" {
		entry["item_id"] = itemID
	}
	for k, v := range params {
		entry[k] = v
	}

	var res sendResponse
	if err := c.post(ctx, "/v3/send", map[string]any{"actions": []any{entry}}, true, &res); err != nil {
		return err
	}
	if res.Status != 1 {
		return &RemoteError{StatusCode: http.StatusOK, Message: fmt.Sprintf("action %s rejected", action)}
	}

	c.logger.Debug("sent action", "action", action, "item_id", itemID)
	return nil
}

// DeleteTag removes a tag from every item on the remote service.
func (c *Client) DeleteTag(ctx context.Context, tagID string) error {
	return c.SendAction(ctx, ActionTagDelete, "", map[string]any{"tag": tagID})
}

// post sends a JSON body. With auth enabled the consumer key and access token
// ride inside the body, the way the Pocket API expects them.
func (c *Client) post(ctx context.Context, path string, body map[string]any, useAuth bool, out any) error {
	payload := make(map[string]any, len(body)+2)
	for k, v := range body {
		payload[k] = v
	}
	payload["consumer_key"] = c.consumerKey
	if useAuth {
		token, err := c.session.AccessToken()
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		payload["access_token"] = token
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    resp.Header.Get("X-Error"),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
