package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoodName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "apfel", "Apfel"},
		{"leading hyphen and quantity", "- 2 Scheiben Brot", "Brot"},
		{"clock time", "08:30 Uhr Kaffee", "Kaffee"},
		{"clock time without uhr", "7:15 Müsli", "Müsli"},
		{"leading mit", "mit Milch", "Milch"},
		{"decimal quantity with unit", "1,5 l Wasser", "Wasser"},
		{"unit glued to number", "200g Joghurt", "Joghurt"},
		{"spoon abbreviation", "2 EL Honig", "Honig"},
		{"size adjective then measure word", "kleines Glas Orangensaft", "Orangensaft"},
		{"measure word only prefix", "Tasse Tee", "Tee"},
		{"mit inside the name stays", "HAFERFLOCKEN mit milch", "Haferflocken Mit Milch"},
		{"hyphenated words", "apfel-birne", "Apfel-Birne"},
		{"surrounding whitespace", "   reis  ", "Reis"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFoodName(tt.input))
		})
	}
}

func TestNormalizeFoodNameIsIdempotent(t *testing.T) {
	inputs := []string{
		"- - Apfel",
		"2 2 Brot",
		"mit mit Käse",
		"halbe große Portion Nudeln",
		"12:00 Uhr 3 Stück Kuchen",
		"Handvoll Nüsse",
		"0,5 Liter Milch",
		"Scheiben",
		"Kaffee, schwarz",
		"1/2 Tasse Reis",
	}
	for _, in := range inputs {
		once := NormalizeFoodName(in)
		assert.Equal(t, once, NormalizeFoodName(once), "input %q", in)
	}
}
