package worldcat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/segmentio/encoding/json"
)

// Fetch retrieves the full bibliographic record for an OCLC number. The
// response is returned as a weakly typed JSON tree for the extractor.
// Any non-success status or transport error yields RequestError; the
// caller treats that as "no metadata available".
func (c *Client) Fetch(ctx context.Context, number, token string) (map[string]any, error) {
	if err := c.requestGate.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := c.cfg.BaseURL + "/bibs/" + url.PathEscape(number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, RequestError{Endpoint: "fetch", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	c.Metrics.ObserveRequest("fetch", time.Since(start))
	if err != nil {
		return nil, RequestError{Endpoint: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, RequestError{Endpoint: "fetch", Status: resp.StatusCode}
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, RequestError{Endpoint: "fetch", Err: fmt.Errorf("decode bib record: %w", err)}
	}
	return doc, nil
}
