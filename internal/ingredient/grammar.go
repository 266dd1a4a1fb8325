package ingredient

import (
	"math"
	"strconv"
	"strings"
)

// Units the grammar recognizes, singular lowercase. Plural forms are reduced
// before lookup, so "cups" matches "cup" but abbreviations stay as written.
var knownUnits = map[string]struct{}{
	"cup":        {},
	"tablespoon": {},
	"tbsp":       {},
	"tbs":        {},
	"teaspoon":   {},
	"tsp":        {},
	"ounce":      {},
	"oz":         {},
	"pound":      {},
	"lb":         {},
	"gram":       {},
	"g":          {},
	"kilogram":   {},
	"kg":         {},
	"milligram":  {},
	"mg":         {},
	"liter":      {},
	"litre":      {},
	"l":          {},
	"milliliter": {},
	"millilitre": {},
	"ml":         {},
	"quart":      {},
	"qt":         {},
	"pint":       {},
	"pt":         {},
	"gallon":     {},
	"gal":        {},
	"pinch":      {},
	"dash":       {},
	"clove":      {},
	"can":        {},
	"jar":        {},
	"slice":      {},
	"stick":      {},
	"package":    {},
	"pkg":        {},
	"bunch":      {},
	"head":       {},
	"piece":      {},
	"sprig":      {},
	"stalk":      {},
	"handful":    {},
	"drop":       {},
	"cube":       {},
	"sheet":      {},
	"bottle":     {},
	"bag":        {},
	"scoop":      {},
}

type parsedLine struct {
	Quantity float64
	Unit     string
	Name     string
}

// parseLine applies the quantity/unit/name grammar to a normalized line.
// Nothing here fails: a line with no recognizable quantity or unit comes
// back with quantity 0, unit "" and the remaining text as the name.
func parseLine(line string) parsedLine {
	tokens := strings.Fields(line)

	qty, tokens := scanQuantity(tokens)
	unit, tokens := scanUnit(tokens)

	if len(tokens) > 0 && strings.EqualFold(tokens[0], "of") {
		tokens = tokens[1:]
	}

	name := strings.Trim(strings.Join(tokens, " "), " ,")

	return parsedLine{Quantity: round3(qty), Unit: unit, Name: name}
}

// scanQuantity consumes the leading amount tokens: integers, decimals,
// fractions, mixed numbers ("2 1/2") and ranges ("2-3", "2 to 3", the first
// bound wins).
func scanQuantity(tokens []string) (float64, []string) {
	if len(tokens) == 0 {
		return 0, tokens
	}

	v, ok := numberValue(tokens[0])
	if !ok {
		// Embedded range like "2-3".
		if lo, _, found := strings.Cut(tokens[0], "-"); found {
			if rv, rok := numberValue(lo); rok {
				return rv, tokens[1:]
			}
		}
		return 0, tokens
	}
	rest := tokens[1:]

	// Mixed number: integer followed by a fraction.
	if v == math.Trunc(v) && len(rest) > 0 {
		if frac, fok := fractionValue(rest[0]); fok {
			return v + frac, rest[1:]
		}
	}

	// Spelled-out range: "2 to 3", "2 - 3".
	if len(rest) >= 2 && (strings.EqualFold(rest[0], "to") || rest[0] == "-") {
		if _, hok := numberValue(rest[1]); hok {
			return v, rest[2:]
		}
	}

	return v, rest
}

// scanUnit consumes one unit token if the grammar knows it.
func scanUnit(tokens []string) (string, []string) {
	if len(tokens) == 0 {
		return "", tokens
	}

	tok := strings.ToLower(strings.Trim(tokens[0], ".,()"))
	if tok == "" {
		return "", tokens
	}

	// Two-token "fl oz" and friends.
	if tok == "fl" && len(tokens) > 1 {
		next := strings.ToLower(strings.Trim(tokens[1], ".,()"))
		if next == "oz" || singularize(next) == "ounce" {
			return "fl oz", tokens[2:]
		}
	}

	if reduced := singularize(tok); reduced != "" {
		return reduced, tokens[1:]
	}

	return "", tokens
}

// singularize reduces a token to its known singular unit form, or "" when the
// token is not a unit.
func singularize(tok string) string {
	if _, ok := knownUnits[tok]; ok {
		return tok
	}
	if t := strings.TrimSuffix(tok, "es"); t != tok {
		if _, ok := knownUnits[t]; ok {
			return t
		}
	}
	if t := strings.TrimSuffix(tok, "s"); t != tok {
		if _, ok := knownUnits[t]; ok {
			return t
		}
	}
	return ""
}

// numberValue parses a token as an integer, decimal or "n/d" fraction.
func numberValue(tok string) (float64, bool) {
	if tok == "" {
		return 0, false
	}
	if v, ok := fractionValue(tok); ok {
		return v, true
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
