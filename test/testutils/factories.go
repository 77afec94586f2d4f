// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/domain/remedy"
	"github.com/tastevine/v1/internal/domain/user"
	"github.com/tastevine/v1/internal/ports/inbound"
)

// Factory generates randomized but well-formed test data. Seed it for
// reproducible runs.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory creates a factory with a seeded faker.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// User builds a persisted-shape user with a known password.
func (f *Factory) User(password string) *user.User {
	u, err := user.NewUser(f.faker.Email(), f.faker.Name(), password)
	if err != nil {
		panic(fmt.Sprintf("testutils: build user: %v", err))
	}
	return u
}

// Recipe builds a community recipe authored by authorID.
func (f *Factory) Recipe(authorID uuid.UUID, author string) *recipe.Recipe {
	r, err := recipe.NewRecipe(
		f.faker.Dinner(),
		f.faker.Sentence(8),
		f.ingredients(4),
		f.instructions(3),
		authorID,
		author,
	)
	if err != nil {
		panic(fmt.Sprintf("testutils: build recipe: %v", err))
	}
	return r
}

// Remedy builds a shared remedy authored by authorID.
func (f *Factory) Remedy(authorID uuid.UUID) *remedy.Remedy {
	r, err := remedy.NewRemedy(
		f.faker.Dinner(),
		f.faker.Sentence(8),
		f.ingredients(3),
		f.instructions(3),
		authorID,
		remedy.Details{
			CookTime:  "20 minutes",
			Servings:  "2",
			Region:    f.faker.Country(),
			Tradition: f.faker.Sentence(5),
			Illness:   "cold",
		},
	)
	if err != nil {
		panic(fmt.Sprintf("testutils: build remedy: %v", err))
	}
	return r
}

// SubmitRecipeCommand builds a valid recipe submission for authorID.
func (f *Factory) SubmitRecipeCommand(authorID uuid.UUID) inbound.SubmitRecipeCommand {
	return inbound.SubmitRecipeCommand{
		AuthorID:     authorID,
		Title:        f.faker.Dinner(),
		Description:  f.faker.Sentence(10),
		Ingredients:  f.ingredients(4),
		Instructions: f.instructions(3),
		Difficulty:   "Medium",
		PrepTime:     "15 minutes",
	}
}

// RegisterCommand builds a valid registration.
func (f *Factory) RegisterCommand() inbound.RegisterCommand {
	return inbound.RegisterCommand{
		Email:    f.faker.Email(),
		Name:     f.faker.Name(),
		Password: f.faker.Password(true, true, true, false, false, 12),
	}
}

// GeneratedRecipe builds a complete model output.
func (f *Factory) GeneratedRecipe() *recipe.Generated {
	return &recipe.Generated{
		Title:        f.faker.Dinner(),
		Description:  f.faker.Sentence(10),
		PrepTime:     "15 minutes",
		CookTime:     "30 minutes",
		TotalTime:    "45 minutes",
		Difficulty:   "Easy",
		Ingredients:  f.ingredients(4),
		Instructions: f.instructions(3),
		AlternativeIngredients: map[string]string{
			"butter": "olive oil",
		},
		Nutrition: recipe.Nutrition{
			Calories: "350",
			Protein:  "12g",
			Carbs:    "40g",
			Fat:      "14g",
		},
		Plating: f.faker.Sentence(6),
		History: f.faker.Sentence(12),
	}
}

func (f *Factory) ingredients(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%d cups %s", i+1, f.faker.Vegetable())
	}
	return out
}

func (f *Factory) instructions(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = f.faker.Sentence(7)
	}
	return out
}
