package pocket

import (
	"context"
	"fmt"
	"net/url"
)

// RequestToken starts the login handshake and returns the code the user
// authorizes in a browser.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	body := map[string]any{
		"redirect_uri": c.redirectURI,
	}

	var res oauthRequestResponse
	if err := c.post(ctx, "/v3/oauth/request", body, false, &res); err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	if res.Code == "" {
		return "", fmt.Errorf("request token: empty code in response")
	}
	return res.Code, nil
}

// AuthorizeURL builds the browser URL where the user approves the request
// token.
func (c *Client) AuthorizeURL(requestToken string) string {
	q := url.Values{}
	q.Set("request_token", requestToken)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("mobile", "1")
	return c.baseURL + "/auth/authorize?" + q.Encode()
}

// Authorize exchanges an approved request token for an access token and the
// account username.
func (c *Client) Authorize(ctx context.Context, requestToken string) (*Authorization, error) {
	body := map[string]any{
		"code": requestToken,
	}

	var res Authorization
	if err := c.post(ctx, "/v3/oauth/authorize", body, false, &res); err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}
	if res.AccessToken == "" {
		return nil, fmt.Errorf("authorize: empty access token in response")
	}
	return &res, nil
}
