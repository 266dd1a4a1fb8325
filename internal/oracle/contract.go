// Package oracle owns the LLM extraction contract: prompt construction,
// strict JSON decoding of responses, and the text/vision oracle fronts the
// extraction pipeline calls.
package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"recipe_fetcher/internal/normalizer"
)

// ErrBadResponse reports a completion the contract decoder could not read.
// Treated as transient: models occasionally mangle the JSON and a retried
// call usually comes back clean.
var ErrBadResponse = errors.New("oracle response violates contract")

// RejectionError is the oracle explicitly reporting that the input is not a
// recipe. Terminal: retrying cannot change the answer.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return "not a recipe: " + e.Reason
}

// IsRejection reports whether err carries an explicit oracle rejection.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// Result is the contract both oracles must answer with: either
// {"is_recipe": false, "reason": ...} or the extracted recipe fields.
type Result struct {
	IsRecipe     *bool           `json:"is_recipe"`
	Reason       string          `json:"reason"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Ingredients  []RawIngredient `json:"ingredients"`
	Instructions []string        `json:"instructions_list"`
	Serves       ScalarValue     `json:"serves"`
	Nutrients    map[string]any  `json:"nutrients"`
}

// RawIngredient is the tagged union the contract allows per ingredient
// entry: a free-text line, or an already-structured object. The shape is
// resolved here at the decode boundary so nothing downstream branches on it
// again.
type RawIngredient struct {
	Structured bool
	Text       string
	Name       string
	Quantity   float64
	Unit       string
}

func (r *RawIngredient) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		r.Text = text
		return nil
	}

	var obj struct {
		Name     string `json:"name"`
		Quantity any    `json:"quantity"`
		Unit     string `json:"unit"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}

	r.Structured = true
	r.Name = strings.TrimSpace(obj.Name)
	r.Quantity = normalizer.ToFloat(obj.Quantity)
	r.Unit = strings.TrimSpace(obj.Unit)
	return nil
}

// ScalarValue tolerates a field the model may answer as a number or prose
// ("4 servings").
type ScalarValue struct {
	value any
}

func (s *ScalarValue) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &s.value)
}

func (s ScalarValue) Value() any {
	return s.value
}

// Decode parses a raw completion into a Result. Markdown fences are
// stripped and the outermost JSON object sliced out first, since models
// wrap output in prose despite the prompt. A missing is_recipe flag is a
// contract violation, not a rejection.
func Decode(raw string) (*Result, error) {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in %d bytes", ErrBadResponse, len(raw))
	}

	var res Result
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if res.IsRecipe == nil {
		return nil, fmt.Errorf("%w: missing is_recipe", ErrBadResponse)
	}
	if !*res.IsRecipe {
		reason := res.Reason
		if reason == "" {
			reason = "no reason given"
		}
		return nil, &RejectionError{Reason: reason}
	}
	if len(res.Ingredients) == 0 && len(res.Instructions) == 0 {
		return nil, &RejectionError{Reason: "extraction returned no usable content"}
	}

	return &res, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
