package pipeline

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ArchivoVenezuela/avocado-web/models"
)

func sampleRecord() *models.BibliographicRecord {
	return &models.BibliographicRecord{
		OCLCNumber: "12345",
		Title:      "Cien años de soledad",
		Creator:    "Gabriel García Márquez",
		Publisher:  "Sudamericana",
		Date:       "1967",
		Language:   "spa",
		URL:        "https://www.worldcat.org/oclc/12345",
	}
}

func TestCSVWriterBOMAndHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	writer, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}
	if err := writer.Write([]*models.BibliographicRecord{sampleRecord()}); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("output missing UTF-8 byte-order mark")
	}

	reader := csv.NewReader(bytes.NewReader(raw[3:]))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0][0] != "OCLC #" || records[0][12] != "URL" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if len(records[1]) != 13 {
		t.Fatalf("row has %d fields, want 13", len(records[1]))
	}
	if records[1][1] != "Cien años de soledad" {
		t.Fatalf("title cell = %q", records[1][1])
	}
}

func TestJSONWriterWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")

	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("create json writer: %v", err)
	}
	if err := writer.Write([]*models.BibliographicRecord{sampleRecord(), sampleRecord()}); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close json: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var rec models.BibliographicRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d not valid json: %v", lines, err)
		}
		if rec.OCLCNumber != "12345" {
			t.Fatalf("line %d oclc = %q", lines, rec.OCLCNumber)
		}
	}
	if lines != 2 {
		t.Fatalf("lines = %d, want 2", lines)
	}
}

func TestDualWriterWritesBoth(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out.csv")
	jsonPath := filepath.Join(dir, "out.jsonl")

	writer, err := NewDualWriter(csvPath, jsonPath)
	if err != nil {
		t.Fatalf("create dual writer: %v", err)
	}
	if err := writer.Write([]*models.BibliographicRecord{sampleRecord()}); err != nil {
		t.Fatalf("write dual: %v", err)
	}
	if err := writer.Validate(); err != nil {
		t.Fatalf("validate dual: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close dual: %v", err)
	}

	for _, path := range []string{csvPath, jsonPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
}

func TestReadRowsRequiredColumns(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "missing all",
			input:   "a,b,c\n1,2,3\n",
			wantErr: "required columns",
		},
		{
			name:    "missing title",
			input:   "OCLC #,Author\n,x\n",
			wantErr: "Title",
		},
		{
			name:    "case sensitive",
			input:   "oclc #,author,title\n,,\n",
			wantErr: "OCLC #",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRows(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReadRowsParsesBatch(t *testing.T) {
	input := "\ufeffOCLC #,Author,Title\n" +
		"555,\"García Márquez, Gabriel\",Cien años de soledad\n" +
		",\"Borges, Jorge Luis\",Ficciones\n"

	rows, err := ReadRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].OCLCNumber != "555" || rows[0].Author != "García Márquez, Gabriel" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].OCLCNumber != "" || rows[1].Title != "Ficciones" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func TestReadRowsExtraColumnsIgnored(t *testing.T) {
	input := "Notes,OCLC #,Author,Title\nkeep,1,a,t\n"
	rows, err := ReadRows(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if rows[0].OCLCNumber != "1" || rows[0].Title != "t" {
		t.Fatalf("row = %+v", rows[0])
	}
}

func TestWriteTemplateRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.csv")

	if err := WriteTemplate(path); err != nil {
		t.Fatalf("write template: %v", err)
	}

	rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read template back: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("template rows = %d, want 10", len(rows))
	}
	if rows[0].Author != "García Márquez, Gabriel" || rows[0].Title != "Cien años de soledad" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	for _, row := range rows {
		if row.OCLCNumber != "" {
			t.Fatalf("template rows should have empty OCLC numbers: %+v", row)
		}
	}
}
