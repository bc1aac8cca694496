// Package models defines data structures for the enrichment run.
package models

import "time"

// InputRow is one row of the uploaded batch: a title/author pair plus an
// optional OCLC number that, when present, is trusted verbatim.
type InputRow struct {
	OCLCNumber string
	Author     string
	Title      string
}

// BibliographicRecord is the normalized flat output record. Every field
// defaults to the empty string; no field is ever absent from the output.
type BibliographicRecord struct {
	OCLCNumber string `json:"oclc_number"`
	Title      string `json:"title"`
	Creator    string `json:"creator"`
	Publisher  string `json:"publisher"`
	Date       string `json:"date"`
	Language   string `json:"language"`
	Subjects   string `json:"subjects"`
	Type       string `json:"type"`
	Format     string `json:"format"`
	ISBN       string `json:"isbn"`
	ISSN       string `json:"issn"`
	Edition    string `json:"edition"`
	URL        string `json:"url"`
}

// Header is the fixed output column order expected by downstream
// spreadsheets.
func Header() []string {
	return []string{
		"OCLC #", "Title", "Creator", "Publisher", "Date",
		"Language", "Subjects", "Type", "Format",
		"ISBN", "ISSN", "Edition", "URL",
	}
}

// Fields returns the record values in Header order.
func (r *BibliographicRecord) Fields() []string {
	return []string{
		r.OCLCNumber,
		r.Title,
		r.Creator,
		r.Publisher,
		r.Date,
		r.Language,
		r.Subjects,
		r.Type,
		r.Format,
		r.ISBN,
		r.ISSN,
		r.Edition,
		r.URL,
	}
}

// RunStats counts row outcomes for a single pipeline run.
type RunStats struct {
	Processed int
	Found     int
	Complete  int
}

// EnrichResult holds the overall result of an enrichment run.
type EnrichResult struct {
	Records      []*BibliographicRecord
	Stats        RunStats
	StartTime    time.Time
	EndTime      time.Time
	ErrorsByType map[string]int
}
