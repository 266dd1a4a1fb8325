package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"recipe_fetcher/internal/domain"
	"recipe_fetcher/internal/ingredient"
	"recipe_fetcher/internal/normalizer"
)

// ErrNoRecipeMarkup reports that a page carries no usable schema.org Recipe
// node. Callers treat it as "try the next extraction stage", not a hard
// failure.
var ErrNoRecipeMarkup = errors.New("no recipe markup found")

// Canonical macro keys as schema.org NutritionInformation spells them.
var nutritionKeys = []string{
	"calories",
	"fatContent",
	"saturatedFatContent",
	"unsaturatedFatContent",
	"carbohydrateContent",
	"fiberContent",
	"sugarContent",
	"proteinContent",
	"cholesterolContent",
	"sodiumContent",
}

// SchemaOrg extracts recipes from JSON-LD <script> blocks, the structured
// markup most recipe sites publish.
type SchemaOrg struct {
	fetcher *PageFetcher
	logger  *slog.Logger
}

func NewSchemaOrg(fetcher *PageFetcher, logger *slog.Logger) *SchemaOrg {
	return &SchemaOrg{
		fetcher: fetcher,
		logger:  logger.With("component", "schema_scraper"),
	}
}

func (s *SchemaOrg) Scrape(ctx context.Context, pageURL string) (*domain.RecipeData, error) {
	doc, err := s.fetcher.Document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	for _, block := range ldJSONBlocks(doc) {
		var root any
		if err := json.Unmarshal([]byte(block), &root); err != nil {
			s.logger.Debug("skipping malformed ld+json block", "url", pageURL, "error", err)
			continue
		}
		if node := findRecipeNode(root); node != nil {
			data := s.mapRecipeNode(node, pageURL)
			return &data, nil
		}
	}

	return nil, ErrNoRecipeMarkup
}

// ldJSONBlocks collects the contents of every
// <script type="application/ld+json"> element.
func ldJSONBlocks(doc *html.Node) []string {
	var blocks []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" &&
			strings.EqualFold(attr(n, "type"), "application/ld+json") {
			var buf strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					buf.WriteString(c.Data)
				}
			}
			if b := strings.TrimSpace(buf.String()); b != "" {
				blocks = append(blocks, b)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return blocks
}

// findRecipeNode locates a schema.org Recipe object in a decoded ld+json
// value: the node itself, an @graph member, or an array element.
func findRecipeNode(v any) map[string]any {
	switch node := v.(type) {
	case map[string]any:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"].([]any); ok {
			for _, item := range graph {
				if found := findRecipeNode(item); found != nil {
					return found
				}
			}
		}
	case []any:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

// isRecipeType matches "@type": "Recipe" in both its string and list forms.
func isRecipeType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, "Recipe")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

func (s *SchemaOrg) mapRecipeNode(node map[string]any, pageURL string) domain.RecipeData {
	data := domain.RecipeData{
		Name:        ingredient.Truncate(stringValue(node["name"]), domain.MaxNameLen),
		Description: normalizer.StripTags(stringValue(node["description"])),
		ImageURL:    imageURL(node["image"]),
		SourceURL:   pageURL,
		Serves:      normalizer.ParseServes(yieldValue(node["recipeYield"])),
	}

	for _, raw := range stringList(node["recipeIngredient"]) {
		data.Ingredients = append(data.Ingredients, ingredient.Parse(raw)...)
	}

	for i, text := range instructionTexts(node["recipeInstructions"]) {
		data.Steps = append(data.Steps, domain.Step{
			Description: ingredient.Truncate(text, domain.MaxStepLen),
			Order:       i + 1,
		})
	}

	if nutrition, ok := node["nutrition"].(map[string]any); ok {
		var entries []normalizer.NutrientEntry
		for _, key := range nutritionKeys {
			if v, present := nutrition[key]; present {
				entries = append(entries, normalizer.NutrientEntry{Name: macroToName(key), Amount: v})
			}
		}
		data.Nutrients = normalizer.NormalizeNutrients(entries)
	}

	return data
}

// macroToName bridges schema.org keys back to the names the shared macro
// table recognizes.
func macroToName(key string) string {
	switch key {
	case "calories":
		return "calories"
	case "fatContent":
		return "fat"
	case "saturatedFatContent":
		return "saturated fat"
	case "unsaturatedFatContent":
		return "unsaturated fat"
	case "carbohydrateContent":
		return "carbohydrates"
	case "fiberContent":
		return "fiber"
	case "sugarContent":
		return "sugar"
	case "proteinContent":
		return "protein"
	case "cholesterolContent":
		return "cholesterol"
	case "sodiumContent":
		return "sodium"
	default:
		return key
	}
}

// instructionTexts flattens recipeInstructions: a bare string, a list of
// strings, HowToStep objects, or HowToSection groups nesting further steps.
func instructionTexts(v any) []string {
	var out []string

	var collect func(any)
	collect = func(v any) {
		switch node := v.(type) {
		case string:
			if text := normalizer.StripTags(node); text != "" {
				out = append(out, text)
			}
		case []any:
			for _, item := range node {
				collect(item)
			}
		case map[string]any:
			if items, ok := node["itemListElement"].([]any); ok {
				for _, item := range items {
					collect(item)
				}
				return
			}
			text := stringValue(node["text"])
			if text == "" {
				text = stringValue(node["name"])
			}
			if text = normalizer.StripTags(text); text != "" {
				out = append(out, text)
			}
		}
	}
	collect(v)

	return out
}

// imageURL handles the image being a URL, a list, or an ImageObject.
func imageURL(v any) string {
	switch node := v.(type) {
	case string:
		return strings.TrimSpace(node)
	case []any:
		for _, item := range node {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	case map[string]any:
		return stringValue(node["url"])
	}
	return ""
}

// yieldValue picks a scalar out of recipeYield, which may be a list.
func yieldValue(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func stringList(v any) []string {
	var out []string
	switch node := v.(type) {
	case string:
		out = append(out, node)
	case []any:
		for _, item := range node {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
