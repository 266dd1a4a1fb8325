package oracle

const resultSchema = `{
  "is_recipe": true,
  "title": "string",
  "description": "string",
  "ingredients": [{"name": "string", "quantity": number, "unit": "string"}],
  "instructions_list": ["string"],
  "serves": number,
  "nutrients": {"calories": number, "protein": number}
}`

const textSystemPrompt = `You are a recipe extraction engine.

Your task:
- Decide whether the provided page text contains a cooking recipe.
- If it does NOT, output exactly: {"is_recipe": false, "reason": "short explanation"}
- If it does, extract it into STRICT JSON matching this schema:
` + resultSchema + `

Rules:
- Output MUST be valid JSON and contain ONLY JSON.
- NO markdown fences, NO explanations, NO extra text.
- Ingredient entries may be plain strings when quantity or unit are unclear.
- instructions_list holds one step per entry, in cooking order.
- Omit "serves" and "nutrients" when the text does not state them.`

const visionSystemPrompt = `You are a recipe extraction engine reading a photograph.

Your task:
- Decide whether the image shows a cooking recipe (a recipe card, cookbook
  page, screenshot, or handwritten recipe).
- If it does NOT, output exactly: {"is_recipe": false, "reason": "short explanation"}
- If it does, extract it into STRICT JSON matching this schema:
` + resultSchema + `

Rules:
- Output MUST be valid JSON and contain ONLY JSON.
- NO markdown fences, NO explanations, NO extra text.
- Transcribe quantities exactly as printed; use strings for unclear entries.
- instructions_list holds one step per entry, in cooking order.`

const visionUserPrompt = "Extract the recipe from this image."

func textUserPrompt(pageText string) string {
	return "PAGE TEXT:\n" + pageText
}
