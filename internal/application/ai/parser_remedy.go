package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// GeneratedRemedy is the structured record produced by parsing a model
// response during remedy generation.
type GeneratedRemedy struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Ingredients       []string `json:"ingredients"`
	Instructions      []string `json:"instructions"`
	CookingTime       string   `json:"cookingTime"`
	Servings          string   `json:"servings"`
	HealthBenefits    []string `json:"healthBenefits"`
	RemedyExplanation string   `json:"remedyExplanation"`
	Variations        []string `json:"variations"`
	Precautions       []string `json:"precautions"`
	Region            string   `json:"region"`
	Tradition         string   `json:"tradition"`
}

var requiredRemedyFields = []string{"title", "description", "ingredients", "instructions"}

// ParseRemedyResponse extracts and validates a generated remedy. The
// model is asked for JSON; if no JSON object is present at all, the
// legacy line-oriented section format is tried before giving up.
func ParseRemedyResponse(raw string) (*GeneratedRemedy, error) {
	jsonStr, err := extractJSON(raw, '{', '}')
	if err != nil {
		// Older prompts produced "Title: ..." section output; fall
		// back to the line scanner only when there is no JSON to try.
		return parseRemedySections(raw)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &obj); err != nil {
		return nil, &MalformedJSONError{Raw: raw, Err: err}
	}

	var missing []string
	for _, field := range requiredRemedyFields {
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

	remedy := &GeneratedRemedy{
		Title:             stringValue(obj["title"]),
		Description:       stringValue(obj["description"]),
		Ingredients:       ingredients,
		Instructions:      instructions,
		CookingTime:       optionalString(obj["cookingTime"]),
		Servings:          optionalString(obj["servings"]),
		RemedyExplanation: optionalString(obj["remedyExplanation"]),
		Region:            optionalString(obj["region"]),
		Tradition:         optionalString(obj["tradition"]),
	}
	remedy.HealthBenefits = optionalStringSlice(obj["healthBenefits"])
	remedy.Variations = optionalStringSlice(obj["variations"])
	remedy.Precautions = optionalStringSlice(obj["precautions"])

	return remedy, nil
}

func optionalString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func optionalStringSlice(v interface{}) []string {
	values, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var result []string
	for _, item := range values {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

var listItemPattern = regexp.MustCompile(`^(?:[-•*]|\d+\.)\s*`)

// remedySectionNames maps the literal headers of the legacy text format
// to their record fields. List sections collect bulleted lines; scalar
// sections take the remainder of the header line plus continuations.
var remedyListSections = map[string]bool{
	"ingredients":     true,
	"instructions":    true,
	"health benefits": true,
	"variations":      true,
	"precautions":     true,
}

// parseRemedySections is the legacy fallback parser for the line-based
// "Title: / Ingredients: / ..." remedy format.
func parseRemedySections(raw string) (*GeneratedRemedy, error) {
	remedy := &GeneratedRemedy{}

	scalar := map[string]*string{
		"title":              &remedy.Title,
		"description":        &remedy.Description,
		"cooking time":       &remedy.CookingTime,
		"servings":           &remedy.Servings,
		"remedy explanation": &remedy.RemedyExplanation,
		"region":             &remedy.Region,
		"tradition":          &remedy.Tradition,
	}
	lists := map[string]*[]string{
		"ingredients":     &remedy.Ingredients,
		"instructions":    &remedy.Instructions,
		"health benefits": &remedy.HealthBenefits,
		"variations":      &remedy.Variations,
		"precautions":     &remedy.Precautions,
	}

	var currentList *[]string
	var currentScalar *string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, rest, ok := matchSectionHeader(line); ok {
			currentList, currentScalar = nil, nil
			if target, isList := lists[name]; isList {
				currentList = target
			} else if target, isScalar := scalar[name]; isScalar {
				*target = rest
				currentScalar = target
			}
			continue
		}

		switch {
		case currentList != nil:
			if listItemPattern.MatchString(line) {
				*currentList = append(*currentList, listItemPattern.ReplaceAllString(line, ""))
			}
		case currentScalar != nil:
			*currentScalar += " " + line
		}
	}

	var missing []string
	if remedy.Title == "" {
		missing = append(missing, "title")
	}
	if remedy.Description == "" {
		missing = append(missing, "description")
	}
	if len(remedy.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(remedy.Instructions) == 0 {
		missing = append(missing, "instructions")
	}
	if len(missing) == 4 {
		// Nothing matched at all: not the section format either.
		return nil, ErrNoJSONFound
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	return remedy, nil
}

// matchSectionHeader reports whether the line starts a known section,
// returning the lowercase section name and any text after the colon.
func matchSectionHeader(line string) (name, rest string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}

	name = strings.ToLower(strings.TrimSpace(line[:idx]))
	if _, isList := remedyListSections[name]; !isList {
		switch name {
		case "title", "description", "cooking time", "servings",
			"remedy explanation", "region", "tradition":
		default:
			return "", "", false
		}
	}

	return name, strings.TrimSpace(line[idx+1:]), true
}
