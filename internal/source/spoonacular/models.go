package spoonacular

import "encoding/json"

// Candidates are kept as raw JSON next to the decoded map so the original
// payload can be stored verbatim.

type randomResponse struct {
	Recipes []json.RawMessage `json:"recipes"`
}

type searchResponse struct {
	Results []json.RawMessage `json:"results"`
}
