// Package normalizer maps external recipe payloads into the storage-ready
// RecipeData shape. The trending feed exposes the same concept under several
// field names across endpoints, so every lookup here is fallback-chained and
// every coercion is total: bad input degrades to a zero value, never an
// error.
package normalizer

import (
	"recipe_fetcher/internal/domain"
	"recipe_fetcher/internal/ingredient"
)

// macroByName maps external nutrient names to the canonical macro keys kept
// on nutrient rows. Names not in this table are dropped.
var macroByName = map[string]string{
	"calories":          "calories",
	"energy":            "calories",
	"fat":               "fatContent",
	"total lipid (fat)": "fatContent",
	"saturated fat":     "saturatedFatContent",
	"unsaturated fat":   "unsaturatedFatContent",
	"carbohydrates":     "carbohydrateContent",
	"net carbs":         "carbohydrateContent",
	"net carbohydrates": "carbohydrateContent",
	"fiber":             "fiberContent",
	"sugar":             "sugarContent",
	"protein":           "proteinContent",
	"cholesterol":       "cholesterolContent",
	"sodium":            "sodiumContent",
}

// MapMacro resolves an external nutrient name to its canonical macro key.
func MapMacro(name string) (string, bool) {
	macro, ok := macroByName[lowerTrim(name)]
	return macro, ok
}

// Normalize converts one feed payload into RecipeData. It never fails; an
// empty map yields an untitled recipe with no children.
func Normalize(payload map[string]any) domain.RecipeData {
	data := domain.RecipeData{Name: domain.DefaultRecipeName}
	if len(payload) == 0 {
		return data
	}

	if name := firstString(payload, "title", "name"); name != "" {
		data.Name = ingredient.Truncate(name, domain.MaxNameLen)
	}
	data.Description = StripTags(firstString(payload, "summary", "instructions"))
	data.ImageURL = firstString(payload, "image")
	data.SourceURL = firstString(payload, "sourceUrl", "spoonacularSourceUrl")
	data.Serves = ParseServes(firstPresent(payload, "servings", "serves", "yields"))
	data.TimesMade = int(ToFloat(payload["aggregateLikes"]))
	data.ReadyInMin = int(ToFloat(payload["readyInMinutes"]))

	data.Ingredients = normalizeIngredients(payload)
	data.Steps = normalizeSteps(payload)
	data.Nutrients = NormalizeNutrients(nutrientEntries(payload))

	return data
}

func normalizeIngredients(payload map[string]any) []domain.Ingredient {
	var out []domain.Ingredient
	seen := make(map[string]struct{})

	for _, key := range []string{"extendedIngredients", "usedIngredients", "missedIngredients"} {
		for _, raw := range asSlice(payload[key]) {
			item, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			name := firstString(item, "nameClean", "originalName", "name", "original")
			if name == "" {
				continue
			}
			if _, dup := seen[lowerTrim(name)]; dup {
				continue
			}
			seen[lowerTrim(name)] = struct{}{}

			ing := domain.Ingredient{
				Name:     ingredient.Truncate(name, domain.MaxNameLen),
				Quantity: Round3(ingredientAmount(item)),
				Unit:     ingredient.Truncate(ingredientUnit(item), domain.MaxUnitLen),
			}
			if original := firstString(item, "original"); original != "" {
				ing.Original = &original
			}
			out = append(out, ing)
		}
	}

	return out
}

func ingredientAmount(item map[string]any) float64 {
	if v, ok := item["amount"]; ok {
		return ToFloat(v)
	}
	for _, system := range []string{"us", "metric"} {
		if m := asMap(asMap(item["measures"])[system]); m != nil {
			if v, ok := m["amount"]; ok {
				return ToFloat(v)
			}
		}
	}
	return 0
}

func ingredientUnit(item map[string]any) string {
	if unit := firstString(item, "unit"); unit != "" {
		return unit
	}
	for _, system := range []string{"us", "metric"} {
		if m := asMap(asMap(item["measures"])[system]); m != nil {
			if unit := firstString(m, "unitShort", "unitLong"); unit != "" {
				return unit
			}
		}
	}
	return ""
}

func normalizeSteps(payload map[string]any) []domain.Step {
	var out []domain.Step

	order := 0
	for _, rawGroup := range asSlice(payload["analyzedInstructions"]) {
		group, ok := rawGroup.(map[string]any)
		if !ok {
			continue
		}
		for _, rawStep := range asSlice(group["steps"]) {
			step, ok := rawStep.(map[string]any)
			if !ok {
				continue
			}
			text := CollapseSpace(firstString(step, "step"))
			if text == "" {
				continue
			}

			order++
			n := int(ToFloat(step["number"]))
			if n <= 0 {
				n = order
			}
			out = append(out, domain.Step{
				Description: ingredient.Truncate(text, domain.MaxStepLen),
				Order:       n,
			})
		}
	}

	if len(out) == 0 {
		if text := StripTags(firstString(payload, "instructions")); text != "" {
			out = append(out, domain.Step{
				Description: ingredient.Truncate(text, domain.MaxStepLen),
				Order:       1,
			})
		}
	}

	return out
}

// NutrientEntry is one nutrient as the feed or an oracle reports it, before
// macro mapping.
type NutrientEntry struct {
	Name   string
	Amount any
}

func nutrientEntries(payload map[string]any) []NutrientEntry {
	var entries []NutrientEntry
	for _, raw := range asSlice(asMap(payload["nutrition"])["nutrients"]) {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, NutrientEntry{
			Name:   firstString(item, "name"),
			Amount: item["amount"],
		})
	}
	return entries
}

// NormalizeNutrients filters entries through the macro table. The first
// occurrence of a macro wins; later duplicates and unknown names are
// dropped, as are negative masses.
func NormalizeNutrients(entries []NutrientEntry) []domain.Nutrient {
	var out []domain.Nutrient
	seen := make(map[string]struct{})

	for _, e := range entries {
		macro, ok := MapMacro(e.Name)
		if !ok {
			continue
		}
		if _, dup := seen[macro]; dup {
			continue
		}

		mass := Round3(ToFloat(e.Amount))
		if mass < 0 {
			continue
		}

		seen[macro] = struct{}{}
		out = append(out, domain.Nutrient{Macro: macro, Mass: mass})
	}

	return out
}
