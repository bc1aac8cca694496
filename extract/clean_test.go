package extract

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "trims whitespace",
			input:    "  Cien años de soledad  ",
			expected: "Cien años de soledad",
		},
		{
			name:     "collapses runs",
			input:    "Doña\t\tBárbara \n  1929",
			expected: "Doña Bárbara 1929",
		},
		{
			name:     "composes decomposed accents",
			input:    "García Márquez",
			expected: "García Márquez",
		},
		{
			name:     "only whitespace",
			input:    " \t\n ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  spaced\tout\ntext  ",
		"García Márquez",
		"ya cleaned",
		"ñ ü é é é",
	}
	for _, input := range inputs {
		once := Clean(input)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: once=%q twice=%q", input, once, twice)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "string", input: "abc", expected: "abc"},
		{name: "integral float", input: float64(12345), expected: "12345"},
		{name: "fractional float", input: 19.84, expected: "19.84"},
		{name: "int", input: 7, expected: "7"},
		{name: "bool", input: true, expected: "true"},
		{name: "nil", input: nil, expected: ""},
		{name: "map", input: map[string]any{"text": "x"}, expected: ""},
		{name: "list", input: []any{"x"}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.expected {
				t.Errorf("Text(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
