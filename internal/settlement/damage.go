package settlement

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DamageKeywords mark a car condition that sends the car to the workshop.
// They are compared against the condition upper-cased and without accents.
var DamageKeywords = []string{
	"BATIDO",
	"AVARIA",
	"QUEBRADO",
	"AMASSADO",
	"COLISAO",
	"COLIDIDO",
	"DANIFICADO",
}

// HasDamageKeyword reports whether the condition text describes damage.
func HasDamageKeyword(condition string) bool {
	folded := foldCondition(condition)
	for _, kw := range DamageKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

func foldCondition(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.ToUpper(stripped)
}
