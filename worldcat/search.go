package worldcat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"

	"github.com/ArchivoVenezuela/avocado-web/extract"
)

// Queries derives the four search strategies for a title/author pair,
// most precise first. A later strategy is only attempted after every
// earlier one came back empty.
func Queries(title, author string) []string {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	return []string{
		fmt.Sprintf(`ti:"%s" AND au:"%s"`, title, author),
		fmt.Sprintf(`ti:%s AND au:%s`, title, author),
		fmt.Sprintf(`"%s" AND "%s"`, title, author),
		fmt.Sprintf(`%s %s`, title, author),
	}
}

type searchResponse struct {
	NumberOfRecords int `json:"numberOfRecords"`
	BibRecords      []struct {
		Identifier struct {
			OCLCNumber any `json:"oclcNumber"`
		} `json:"identifier"`
	} `json:"bibRecords"`
}

// Resolve runs the strategy chain for a title/author pair and returns
// the first OCLC number the catalog reports. A failed strategy is
// skipped silently; ErrNotFound is returned once the chain is exhausted.
func (c *Client) Resolve(ctx context.Context, title, author, token string) (string, error) {
	for i, query := range Queries(title, author) {
		if i > 0 {
			if err := c.strategyGate.Wait(ctx); err != nil {
				return "", err
			}
		}
		number, err := c.searchOnce(ctx, query, token)
		if err != nil {
			if ctx.Err() != nil {
				return "", err
			}
			slog.Debug("search strategy failed",
				slog.Int("strategy", i+1),
				slog.Any("error", err),
			)
			c.Metrics.IncError(Category(err))
			continue
		}
		if number != "" {
			return number, nil
		}
	}
	return "", ErrNotFound
}

func (c *Client) searchOnce(ctx context.Context, query, token string) (string, error) {
	if err := c.requestGate.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.cfg.SearchLimit))
	params.Set("offset", strconv.Itoa(c.cfg.SearchOffset))
	params.Set("orderBy", "bestMatch")
	endpoint := c.cfg.BaseURL + "/bibs?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", RequestError{Endpoint: "search", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	c.Metrics.ObserveRequest("search", time.Since(start))
	if err != nil {
		return "", RequestError{Endpoint: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", RequestError{Endpoint: "search", Status: resp.StatusCode}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", RequestError{Endpoint: "search", Err: fmt.Errorf("decode search response: %w", err)}
	}
	if len(payload.BibRecords) == 0 {
		return "", nil
	}
	return extract.Text(payload.BibRecords[0].Identifier.OCLCNumber), nil
}
