package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean normalizes text for output: Unicode canonical composition (NFC),
// whitespace runs collapsed to a single space, leading and trailing
// whitespace trimmed. Clean is idempotent.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
