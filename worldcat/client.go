// Package worldcat implements the WorldCat Search API v2 client: token
// exchange, strategy-chain search resolution, and per-record metadata
// fetch. All catalog calls go through a pacing gate so no two requests
// land closer together than the configured interval.
package worldcat

import (
	"net/http"

	"github.com/sethgrid/pester"

	"github.com/ArchivoVenezuela/avocado-web/config"
	"github.com/ArchivoVenezuela/avocado-web/pace"
)

const tokenScope = "wcapi:view_bib"

// Doer is the minimal HTTP client interface, satisfied by *http.Client
// and *pester.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the catalog. It is safe for sequential use within one
// run; callers own the single-in-flight discipline.
type Client struct {
	cfg          *config.Config
	HTTPClient   Doer
	Metrics      *Metrics
	requestGate  *pace.Gate
	strategyGate *pace.Gate
}

// NewClient builds a catalog client from cfg.
func NewClient(cfg *config.Config) *Client {
	httpClient := pester.New()
	httpClient.Concurrency = 1
	// A transient failure on a given call is terminal for that call.
	httpClient.MaxRetries = 1
	httpClient.Timeout = cfg.Timeout

	return &Client{
		cfg:          cfg,
		HTTPClient:   httpClient,
		Metrics:      NewMetrics(),
		requestGate:  pace.NewGate(cfg.RequestPause),
		strategyGate: pace.NewGate(cfg.StrategyPause),
	}
}
