// Package ingredient parses free-text ingredient lines ("2½ cups flour")
// into structured records. Parsing is best-effort and total: every line
// yields at least one record, degrading to the raw text as the name when the
// grammar cannot make sense of it.
package ingredient

import (
	"regexp"
	"strings"
	"unicode"

	"recipe_fetcher/internal/domain"
)

var alternativeSep = regexp.MustCompile(`(?i)\s+or\s+`)

// Parse turns one ingredient line into one or more records. Lines naming
// alternatives ("butter or margarine") yield one record per name, all
// sharing the parsed quantity and unit. The worst case is a single record
// with the original text as the name, quantity 0 and unit "".
func Parse(line string) []domain.Ingredient {
	original := strings.TrimSpace(line)

	fallback := []domain.Ingredient{{
		Name:     Truncate(original, domain.MaxNameLen),
		Quantity: 0,
		Unit:     "",
		Original: &original,
	}}

	normalized := NormalizeLine(line)
	if normalized == "" {
		return fallback
	}

	parsed := parseLine(normalized)
	if parsed.Name == "" {
		return fallback
	}

	var out []domain.Ingredient
	for _, name := range splitAlternatives(parsed.Name) {
		out = append(out, domain.Ingredient{
			Name:     Truncate(name, domain.MaxNameLen),
			Quantity: parsed.Quantity,
			Unit:     Truncate(parsed.Unit, domain.MaxUnitLen),
			Original: &original,
		})
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// ParseAll parses every line, concatenating the results. A line the grammar
// chokes on degrades to its fallback record without affecting the others.
func ParseAll(lines []string) []domain.Ingredient {
	var out []domain.Ingredient
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, Parse(line)...)
	}
	return out
}

// splitAlternatives splits "butter or margarine" into separate names. Sides
// that carry no letters (stray numbers, punctuation) suppress the split.
func splitAlternatives(name string) []string {
	parts := alternativeSep.Split(name, -1)
	if len(parts) < 2 {
		return []string{name}
	}

	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, " ,")
		if p == "" || !hasLetter(p) {
			return []string{name}
		}
		names = append(names, p)
	}
	return names
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Truncate caps s at n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
