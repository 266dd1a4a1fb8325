package normalizer

import (
	"encoding/json"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	intPattern    = regexp.MustCompile(`\d+`)
)

// ToFloat coerces any JSON-decoded value to a float64, returning 0 for
// anything it cannot read. Strings may carry a unit suffix ("245 kcal").
func ToFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return sane(n)
	case float32:
		return sane(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return sane(f)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return sane(f)
		}
		if m := numberPattern.FindString(s); m != "" {
			f, err := strconv.ParseFloat(m, 64)
			if err == nil {
				return sane(f)
			}
		}
		return 0
	default:
		return 0
	}
}

func sane(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseServes extracts a positive serving count from numeric or free-text
// values ("6", 6.0, "Serves 6", "4 servings"). Non-positive or unreadable
// input yields nil.
func ParseServes(v any) *int {
	var n int
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		m := intPattern.FindString(s)
		if m == "" {
			return nil
		}
		n, _ = strconv.Atoi(m)
	default:
		n = int(ToFloat(v))
	}

	if n <= 0 {
		return nil
	}
	return &n
}

// StripTags removes HTML markup and collapses whitespace. Entities are
// unescaped first so "&amp;" survives as "&" rather than leaking markup.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return CollapseSpace(tagPattern.ReplaceAllString(html.UnescapeString(s), " "))
}

// CollapseSpace trims and squeezes runs of whitespace to single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Round3 rounds to 3 decimal places, the precision quantity and mass
// columns carry.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
