package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ArchivoVenezuela/avocado-web/models"
)

// templateRows are the starter rows shipped with the input template.
var templateRows = []models.InputRow{
	{Author: "García Márquez, Gabriel", Title: "Cien años de soledad"},
	{Author: "Allende, Isabel", Title: "La casa de los espíritus"},
	{Author: "Vargas Llosa, Mario", Title: "Conversación en la catedral"},
	{Author: "Borges, Jorge Luis", Title: "Ficciones"},
	{Author: "Cortázar, Julio", Title: "Rayuela"},
	{Author: "Carpentier, Alejo", Title: "El reino de este mundo"},
	{Author: "Fuentes, Carlos", Title: "La muerte de Artemio Cruz"},
	{Author: "Uslar Pietri, Arturo", Title: "Las lanzas coloradas"},
	{Author: "Gallegos, Rómulo", Title: "Doña Bárbara"},
	{Author: "Díaz Rodríguez, Manuel", Title: "Ídolos rotos"},
}

// WriteTemplate writes the starter input CSV (OCLC #, Author, Title)
// with a UTF-8 byte-order mark for spreadsheet compatibility.
func WriteTemplate(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create template file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("write byte-order mark: %w", err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(requiredColumns); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	for _, row := range templateRows {
		if err := writer.Write([]string{row.OCLCNumber, row.Author, row.Title}); err != nil {
			return fmt.Errorf("write template row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush template: %w", err)
	}
	return nil
}
