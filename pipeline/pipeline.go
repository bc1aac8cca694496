// Package pipeline sequences search resolution, metadata fetch, and
// field extraction for each input row and writes the resulting records.
//
// Rows are processed strictly in input order with at most one catalog
// request in flight; the client's pacing gates keep the run under the
// catalog's rate ceiling. Per-row latency dominating total run time is
// an accepted tradeoff.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ArchivoVenezuela/avocado-web/extract"
	"github.com/ArchivoVenezuela/avocado-web/models"
	"github.com/ArchivoVenezuela/avocado-web/worldcat"
)

// Catalog is the slice of the WorldCat client the pipeline depends on.
type Catalog interface {
	Token(ctx context.Context) (string, error)
	Resolve(ctx context.Context, title, author, token string) (string, error)
	Fetch(ctx context.Context, number, token string) (map[string]any, error)
}

// Enricher drives one enrichment run over a batch of input rows.
type Enricher struct {
	catalog Catalog
	writer  OutputWriter
	metrics *worldcat.Metrics
}

// NewEnricher builds an enricher. writer may be nil when the caller only
// wants the in-memory records; metrics may be nil.
func NewEnricher(catalog Catalog, writer OutputWriter, metrics *worldcat.Metrics) *Enricher {
	return &Enricher{
		catalog: catalog,
		writer:  writer,
		metrics: metrics,
	}
}

// Run acquires one token and processes rows in order. Rows with both
// title and author empty are excluded from the output entirely; every
// other row yields exactly one record, degraded as far as necessary:
// trusted-identifier record, search-resolved record, or unresolved bare
// record. Only a failed token exchange aborts the run. Cancellation
// stops scheduling further rows; it never abandons a row mid-way.
func (e *Enricher) Run(ctx context.Context, rows []models.InputRow) (*models.EnrichResult, error) {
	token, err := e.catalog.Token(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.EnrichResult{
		StartTime:    time.Now(),
		ErrorsByType: make(map[string]int),
	}

	for i, row := range rows {
		if ctx.Err() != nil {
			slog.Info("run canceled, stopping before next row", slog.Int("row", i+1))
			break
		}

		title := strings.TrimSpace(row.Title)
		author := strings.TrimSpace(row.Author)
		if title == "" && author == "" {
			continue
		}
		result.Stats.Processed++

		number := strings.TrimSpace(row.OCLCNumber)
		outcome := "trusted"
		if number == "" {
			outcome = "unresolved"
			// Search needs both halves of the pair.
			if title != "" && author != "" {
				resolved, err := e.catalog.Resolve(ctx, title, author, token)
				switch {
				case err == nil:
					number = resolved
					outcome = "resolved"
				case errors.Is(err, worldcat.ErrNotFound):
					// Valid terminal outcome, the row degrades to a
					// bare record.
				default:
					result.ErrorsByType[worldcat.Category(err)]++
				}
			}
		}

		var rec *models.BibliographicRecord
		if number != "" {
			result.Stats.Found++
			doc, err := e.catalog.Fetch(ctx, number, token)
			if err != nil {
				slog.Warn("metadata fetch failed",
					slog.String("oclc", number),
					slog.Any("error", err),
				)
				result.ErrorsByType[worldcat.Category(err)]++
				doc = nil
			}
			rec = extract.Record(doc, number)
			if rec.Title != "" && rec.Publisher != "" {
				result.Stats.Complete++
			}
		} else {
			rec = &models.BibliographicRecord{
				Title:   extract.Clean(title),
				Creator: extract.Clean(author),
			}
		}
		e.metrics.IncRecord(outcome)

		result.Records = append(result.Records, rec)
		if e.writer != nil {
			if err := e.writer.Write([]*models.BibliographicRecord{rec}); err != nil {
				return nil, fmt.Errorf("write record: %w", err)
			}
		}

		if (i+1)%25 == 0 {
			slog.Debug("enrichment progress",
				slog.Int("rows", i+1),
				slog.Int("found", result.Stats.Found),
			)
		}
	}

	result.EndTime = time.Now()
	return result, nil
}
