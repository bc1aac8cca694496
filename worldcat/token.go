package worldcat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"
)

// Token exchanges the WS key and secret for a bearer token. Any
// non-200 status, transport error, or malformed body yields AuthError.
// The token carries no expiry tracking; one token serves a whole run.
func (c *Client) Token(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", tokenScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", AuthError{Err: err}
	}
	req.SetBasicAuth(c.cfg.WSKey, c.cfg.WSSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	c.Metrics.ObserveRequest("token", time.Since(start))
	if err != nil {
		c.Metrics.IncError("auth")
		return "", AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.Metrics.IncError("auth")
		return "", AuthError{Err: fmt.Errorf("token endpoint returned status %d", resp.StatusCode)}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.Metrics.IncError("auth")
		return "", AuthError{Err: fmt.Errorf("decode token response: %w", err)}
	}
	if payload.AccessToken == "" {
		c.Metrics.IncError("auth")
		return "", AuthError{Err: fmt.Errorf("token response missing access_token")}
	}
	return payload.AccessToken, nil
}
