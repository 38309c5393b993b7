package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

const measureWords = `((Tasse|Scheibe|Flasche|Dose|Kanne|Prise|Kugel|Tüte)n?)|((Packung|Verpackung|Portion)(en)?)|` +
	`Glass|Glas|Gläser|Becher|Teller|Esslöffel|Teelöffel|Stücke|Stück|Schlücke|Schluck|Handvoll|Hand|` +
	`Kilogramm|Kilogram|Milligramm|Milligram|Miligramm|Miligram|Gramm|Gram|Kilo|Liter|Litre`

var (
	// leadingNoise is tried in order against the start of the name.
	leadingNoise = []*regexp.Regexp{
		regexp.MustCompile(`^-`),
		regexp.MustCompile(`(?i)^\d{1,2}:\d\d(\s?Uhr)?`),
		regexp.MustCompile(`(?i)^mit\s`),
		regexp.MustCompile(`(?i)^\d+(\s?\d*[,/.]\d*)?(\s?(EL|TL|St|stk|gr|ml|m|l|g|x)\.?)?\s`),
		regexp.MustCompile(`(?i)^(halb|klein|groß)(es|er|en|e)\s`),
	}
	measureWordPattern = regexp.MustCompile(`(?i)` + measureWords)
)

// NormalizeFoodName strips quantities, clock times, size adjectives and
// measure words from a free-text foodstuff name and title-cases the rest.
// Rules are applied until nothing more changes, so the result is a fixed
// point: NormalizeFoodName(NormalizeFoodName(x)) == NormalizeFoodName(x).
func NormalizeFoodName(name string) string {
	s := strings.TrimSpace(name)
	for {
		next := stripNoise(s)
		if next == s {
			break
		}
		s = next
	}
	return titleCase(strings.ToLower(s))
}

func stripNoise(s string) string {
	for _, re := range leadingNoise {
		if loc := re.FindStringIndex(s); loc != nil {
			s = strings.TrimSpace(s[loc[1]:])
		}
	}
	s = measureWordPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// titleCase upper-cases every letter that follows a non-letter.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !prevLetter {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
