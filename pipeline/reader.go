package pipeline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ArchivoVenezuela/avocado-web/models"
)

// Required input columns, names case- and spelling-exact.
var requiredColumns = []string{"OCLC #", "Author", "Title"}

// ReadRows parses the batch input CSV. A missing required column is a
// fatal input error for the whole batch, reported before any row is
// processed. A UTF-8 byte-order mark, if present, is skipped.
func ReadRows(r io.Reader) ([]models.InputRow, error) {
	buffered := bufio.NewReader(r)
	if err := skipBOM(buffered); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read input header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("input missing required columns: %s", strings.Join(missing, ", "))
	}

	var rows []models.InputRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read input row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, models.InputRow{
			OCLCNumber: field(record, index["OCLC #"]),
			Author:     field(record, index["Author"]),
			Title:      field(record, index["Title"]),
		})
	}
	return rows, nil
}

// ReadFile reads the batch input CSV from disk.
func ReadFile(path string) ([]models.InputRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()
	return ReadRows(f)
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func skipBOM(r *bufio.Reader) error {
	head, err := r.Peek(3)
	if err != nil {
		// Shorter than a BOM; let the CSV reader report the real state.
		return nil
	}
	if head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		if _, err := r.Discard(3); err != nil {
			return err
		}
	}
	return nil
}
