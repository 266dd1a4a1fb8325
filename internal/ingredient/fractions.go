package ingredient

import (
	"strconv"
	"strings"
)

// Unicode vulgar fractions mapped to their ASCII n/d spelling.
var vulgarFractions = map[rune]string{
	'¼': "1/4",
	'½': "1/2",
	'¾': "3/4",
	'⅐': "1/7",
	'⅑': "1/9",
	'⅒': "1/10",
	'⅓': "1/3",
	'⅔': "2/3",
	'⅕': "1/5",
	'⅖': "2/5",
	'⅗': "3/5",
	'⅘': "4/5",
	'⅙': "1/6",
	'⅚': "5/6",
	'⅛': "1/8",
	'⅜': "3/8",
	'⅝': "5/8",
	'⅞': "7/8",
}

var bulletGlyphs = "•◦▪‣·*–—-"

// NormalizeLine rewrites an ingredient line into parseable ASCII: vulgar
// fractions become "n/d" tokens ("2½" turns into "2 1/2"), leading bullet
// glyphs are stripped and whitespace is collapsed.
func NormalizeLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if frac, ok := vulgarFractions[r]; ok {
			b.WriteByte(' ')
			b.WriteString(frac)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}

	s := strings.TrimSpace(b.String())
	for len(s) > 0 {
		trimmed := strings.TrimLeft(s, bulletGlyphs)
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == s {
			break
		}
		s = trimmed
	}

	return strings.Join(strings.Fields(s), " ")
}

// fractionValue parses "n/d" into its decimal value.
func fractionValue(tok string) (float64, bool) {
	num, den, ok := strings.Cut(tok, "/")
	if !ok {
		return 0, false
	}
	n, errN := strconv.Atoi(num)
	d, errD := strconv.Atoi(den)
	if errN != nil || errD != nil || n < 0 || d <= 0 {
		return 0, false
	}
	return float64(n) / float64(d), true
}
