// Package ai provides the application layer for generative-model calls:
// prompt construction, bounded invocation, and parsing of the model's
// free-form responses into typed records.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tastevine/v1/internal/domain/recipe"
)

// requiredRecipeFields must all be present and non-empty in a generated
// recipe object before it is accepted.
var requiredRecipeFields = []string{
	"title",
	"description",
	"prepTime",
	"cookTime",
	"totalTime",
	"difficulty",
	"ingredients",
	"instructions",
	"nutrition",
	"plating",
	"history",
}

// ParseRecipeResponse extracts and validates a generated recipe from a
// raw model response. The response may wrap the JSON object in prose or
// code fences; typographic quotes are normalized before parsing.
func ParseRecipeResponse(raw string) (*recipe.Generated, error) {
	jsonStr, err := extractJSON(raw, '{', '}')
	if err != nil {
		return nil, err
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &obj); err != nil {
		return nil, &MalformedJSONError{Raw: raw, Err: err}
	}

	var missing []string
	for _, field := range requiredRecipeFields {
		if isAbsent(obj[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	ingredients, err := stringSlice(obj["ingredients"], "ingredients")
	if err != nil {
		return nil, err
	}
	instructions, err := stringSlice(obj["instructions"], "instructions")
	if err != nil {
		return nil, err
	}
	nutrition, err := parseNutrition(obj["nutrition"])
	if err != nil {
		return nil, err
	}

	generated := &recipe.Generated{
		Title:                  stringValue(obj["title"]),
		Description:            stringValue(obj["description"]),
		PrepTime:               stringValue(obj["prepTime"]),
		CookTime:               stringValue(obj["cookTime"]),
		TotalTime:              stringValue(obj["totalTime"]),
		Difficulty:             stringValue(obj["difficulty"]),
		Ingredients:            ingredients,
		Instructions:           instructions,
		Nutrition:              nutrition,
		Plating:                stringValue(obj["plating"]),
		History:                stringValue(obj["history"]),
		AlternativeIngredients: map[string]string{},
	}

	// The only soft-fail field: absent or malformed alternatives
	// default to an empty mapping.
	if alts, ok := obj["alternativeIngredients"].(map[string]interface{}); ok {
		for k, v := range alts {
			if s, ok := v.(string); ok {
				generated.AlternativeIngredients[k] = s
			}
		}
	}

	return generated, nil
}

// ParseIngredientList extracts a JSON array of ingredient strings from a
// raw model response, as returned by image analysis. The list is passed
// through in order, with no dedup or normalization.
func ParseIngredientList(raw string) ([]string, error) {
	jsonStr, err := extractJSON(raw, '[', ']')
	if err != nil {
		return nil, err
	}

	var values []interface{}
	if err := json.Unmarshal([]byte(jsonStr), &values); err != nil {
		return nil, &MalformedJSONError{Raw: raw, Err: err}
	}

	ingredients := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, &MalformedJSONError{
				Raw: raw,
				Err: fmt.Errorf("element %d is not a string", i),
			}
		}
		ingredients[i] = s
	}

	return ingredients, nil
}

// extractJSON normalizes the response text and returns the greedy
// substring from the first open delimiter to the last close delimiter.
func extractJSON(raw string, open, close byte) (string, error) {
	text := normalize(raw)

	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || end <= start {
		return "", ErrNoJSONFound
	}

	return text[start : end+1], nil
}

// normalize replaces typographic quotation marks with straight quotes
// and strips Markdown code-fence markers.
func normalize(text string) string {
	replacer := strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
		"```json", "",
		"```", "",
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// isAbsent mirrors the acceptance rule for required fields: a field is
// missing when absent, null, or an empty string.
func isAbsent(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	default:
		return false
	}
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func stringSlice(v interface{}, field string) ([]string, error) {
	values, ok := v.([]interface{})
	if !ok {
		return nil, &SchemaError{Field: field, Reason: "must be an array of strings"}
	}

	result := make([]string, len(values))
	for i, item := range values {
		s, ok := item.(string)
		if !ok {
			return nil, &SchemaError{
				Field:  field,
				Reason: fmt.Sprintf("element %d is not a string", i),
			}
		}
		result[i] = s
	}
	return result, nil
}

func parseNutrition(v interface{}) (recipe.Nutrition, error) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return recipe.Nutrition{}, &SchemaError{
			Field:  "nutrition",
			Reason: "must be an object with calories, protein, carbs and fat",
		}
	}

	for _, key := range []string{"calories", "protein", "carbs", "fat"} {
		if isAbsent(obj[key]) {
			return recipe.Nutrition{}, &SchemaError{
				Field:  "nutrition",
				Reason: fmt.Sprintf("missing %s", key),
			}
		}
	}

	return recipe.Nutrition{
		Calories: stringValue(obj["calories"]),
		Protein:  stringValue(obj["protein"]),
		Carbs:    stringValue(obj["carbs"]),
		Fat:      stringValue(obj["fat"]),
	}, nil
}
