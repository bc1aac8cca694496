// Package extract maps weakly typed WorldCat JSON onto the flat
// thirteen-field bibliographic record.
//
// The catalog's response schema is not stable record-to-record: the same
// semantic field may arrive as an object, a bare string, or a list. Each
// output field therefore has its own fallback chain built from total
// accessors that substitute a default on any shape mismatch. Extraction
// never fails; the worst case is a record carrying only the OCLC number
// and its derived public URL.
package extract

import (
	"sort"
	"strings"

	"github.com/ArchivoVenezuela/avocado-web/models"
)

// PublicURLPrefix is the public-facing record URL base. The URL is
// always derived from the OCLC number, never read from the response.
const PublicURLPrefix = "https://www.worldcat.org/oclc/"

const maxSubjects = 5

// Record extracts a normalized record for the given OCLC number from a
// catalog response. A nil document yields a record with only the number
// and URL populated.
func Record(doc map[string]any, number string) *models.BibliographicRecord {
	rec := &models.BibliographicRecord{
		OCLCNumber: Clean(number),
		URL:        PublicURLPrefix + Clean(number),
	}
	if doc == nil {
		return rec
	}
	rec.Title = title(doc)
	rec.Creator = creator(doc)
	rec.Publisher = publisher(doc)
	rec.Date = date(doc)
	rec.Language = language(doc)
	rec.Subjects = subjects(doc)
	rec.Type = itemType(doc)
	rec.Format = format(doc)
	rec.ISBN = identifiers(doc, "isbns", "isbn")
	rec.ISSN = identifiers(doc, "issns", "issn")
	rec.Edition = edition(doc)
	return rec
}

// title reads the first main title. A " / " separator introduces the
// statement of responsibility; only the part before it is kept.
func title(doc map[string]any) string {
	entry := firstMap(listAt(mapAt(doc, "title"), "mainTitles"))
	text := textAt(entry, "text")
	if text == "" {
		return ""
	}
	if i := strings.Index(text, " / "); i >= 0 {
		text = text[:i]
	}
	return Clean(text)
}

func creator(doc map[string]any) string {
	entry := firstMap(listAt(mapAt(doc, "contributor"), "creators"))
	if entry == nil {
		return ""
	}
	first := textAt(mapAt(entry, "firstName"), "text")
	second := textAt(mapAt(entry, "secondName"), "text")
	return Clean(strings.TrimSpace(first + " " + second))
}

// publisher tries, in order: the publishers array, the publication
// array, and a direct publisher field that may be a string or a list.
func publisher(doc map[string]any) string {
	if text := textAt(mapAt(firstMap(listAt(doc, "publishers")), "publisherName"), "text"); text != "" {
		return Clean(text)
	}
	if entry := firstMap(listAt(doc, "publication")); entry != nil {
		if text := Text(entry["publisher"]); text != "" {
			return Clean(text)
		}
	}
	switch v := doc["publisher"].(type) {
	case string:
		return Clean(v)
	case []any:
		if len(v) > 0 {
			return Clean(Text(v[0]))
		}
	}
	return ""
}

func date(doc map[string]any) string {
	return Clean(textAt(mapAt(doc, "date"), "publicationDate"))
}

// language accepts either an object with a languageCode field or a bare
// string as the first language entry.
func language(doc map[string]any) string {
	items := listAt(doc, "language")
	if len(items) == 0 {
		return ""
	}
	switch v := items[0].(type) {
	case map[string]any:
		return Clean(Text(v["languageCode"]))
	case string:
		return Clean(v)
	}
	return ""
}

// subjects joins up to the first five subject entries with " ; ". Each
// entry may be an object carrying a subjectName or a bare string.
func subjects(doc map[string]any) string {
	items := listAt(doc, "subject")
	if len(items) > maxSubjects {
		items = items[:maxSubjects]
	}
	var names []string
	for _, item := range items {
		switch v := item.(type) {
		case map[string]any:
			if text := Clean(textAt(mapAt(v, "subjectName"), "text")); text != "" {
				names = append(names, text)
			}
		case string:
			if text := Clean(v); text != "" {
				names = append(names, text)
			}
		}
	}
	return strings.Join(names, " ; ")
}

func itemType(doc map[string]any) string {
	return Clean(textAt(mapAt(doc, "itemType"), "text"))
}

func format(doc map[string]any) string {
	items := listAt(doc, "format")
	if len(items) == 0 {
		return ""
	}
	switch v := items[0].(type) {
	case map[string]any:
		return Clean(Text(v["text"]))
	case string:
		return Clean(v)
	}
	return ""
}

// identifiers unions the flat list under identifier.<listKey> with the
// typed entries of identifier.items whose type matches typeName, then
// deduplicates, sorts, and joins with "; " so output order is
// deterministic regardless of source order.
func identifiers(doc map[string]any, listKey, typeName string) string {
	ident := mapAt(doc, "identifier")
	seen := make(map[string]struct{})
	for _, v := range listAt(ident, listKey) {
		if s := Clean(Text(v)); s != "" {
			seen[s] = struct{}{}
		}
	}
	for _, item := range listAt(ident, "items") {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		if !strings.EqualFold(Text(entry["type"]), typeName) {
			continue
		}
		if s := Clean(Text(entry["value"])); s != "" {
			seen[s] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return ""
	}
	values := make([]string, 0, len(seen))
	for s := range seen {
		values = append(values, s)
	}
	sort.Strings(values)
	return strings.Join(values, "; ")
}

// edition accepts a bare string, a list (first element), or an object
// with a text field.
func edition(doc map[string]any) string {
	v := doc["edition"]
	if items, ok := asList(v); ok {
		if len(items) == 0 {
			return ""
		}
		v = items[0]
	}
	if entry, ok := asMap(v); ok {
		v = entry["text"]
	}
	return Clean(Text(v))
}
