package extraction

import (
	"sort"
	"strings"

	"recipe_fetcher/internal/domain"
	"recipe_fetcher/internal/ingredient"
	"recipe_fetcher/internal/normalizer"
	"recipe_fetcher/internal/oracle"
)

// oracleRecipe flattens a decoded oracle result into storage-ready recipe
// data. The result is already validated, so content is known to exist; only
// the title may still be missing.
func oracleRecipe(res *oracle.Result) *domain.RecipeData {
	data := domain.RecipeData{
		Name:        domain.DefaultRecipeName,
		Description: normalizer.CollapseSpace(res.Description),
		ImageURL:    strings.TrimSpace(res.Image),
		Serves:      normalizer.ParseServes(res.Serves.Value()),
	}

	if name := strings.TrimSpace(res.Title); name != "" {
		data.Name = ingredient.Truncate(name, domain.MaxNameLen)
	}

	for _, raw := range res.Ingredients {
		if raw.Structured {
			if raw.Name == "" {
				continue
			}
			data.Ingredients = append(data.Ingredients, domain.Ingredient{
				Name:     ingredient.Truncate(raw.Name, domain.MaxNameLen),
				Quantity: normalizer.Round3(raw.Quantity),
				Unit:     ingredient.Truncate(raw.Unit, domain.MaxUnitLen),
			})
			continue
		}

		if line := strings.TrimSpace(raw.Text); line != "" {
			data.Ingredients = append(data.Ingredients, ingredient.Parse(line)...)
		}
	}

	for _, instr := range res.Instructions {
		line := normalizer.CollapseSpace(instr)
		if line == "" {
			continue
		}
		data.Steps = append(data.Steps, domain.Step{
			Description: ingredient.Truncate(line, domain.MaxStepLen),
			Order:       len(data.Steps) + 1,
		})
	}

	if len(res.Nutrients) > 0 {
		keys := make([]string, 0, len(res.Nutrients))
		for k := range res.Nutrients {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		entries := make([]normalizer.NutrientEntry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, normalizer.NutrientEntry{Name: k, Amount: res.Nutrients[k]})
		}
		data.Nutrients = normalizer.NormalizeNutrients(entries)
	}

	return &data
}
