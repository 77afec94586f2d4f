package recipe

// Generated is the structured record produced by parsing a model
// response during AI recipe generation. It is ephemeral until the user
// saves it; records that fail validation never reach persistence.
type Generated struct {
	Title                  string            `json:"title"`
	Description            string            `json:"description"`
	PrepTime               string            `json:"prepTime"`
	CookTime               string            `json:"cookTime"`
	TotalTime              string            `json:"totalTime"`
	Difficulty             string            `json:"difficulty"`
	Ingredients            []string          `json:"ingredients"`
	AlternativeIngredients map[string]string `json:"alternativeIngredients"`
	Instructions           []string          `json:"instructions"`
	Nutrition              Nutrition         `json:"nutrition"`
	Plating                string            `json:"plating"`
	History                string            `json:"history"`
}

// Nutrition holds the per-serving nutrition summary the model returns.
// Values are free-form strings ("350 kcal", "12g") exactly as generated.
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}
