// Package recipe contains the domain model for community-submitted recipes.
package recipe

import (
	"time"

	"github.com/google/uuid"

	"github.com/tastevine/v1/internal/domain/content"
)

// Recipe is a community-submitted recipe. Content fields are immutable
// after creation; only the voting state moves, and only through the vote
// ledger.
type Recipe struct {
	id           uuid.UUID
	title        string
	description  string
	ingredients  []string
	instructions []string
	author       string
	authorID     uuid.UUID
	imageURL     string
	dietaryTags  []string
	difficulty   string
	prepTime     string
	voteState    content.VoteState
	createdAt    time.Time
}

// NewRecipe creates a recipe with the neutral voting prior.
func NewRecipe(title, description string, ingredients, instructions []string, authorID uuid.UUID, author string) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	if len(instructions) == 0 {
		return nil, ErrNoInstructions
	}
	if authorID == uuid.Nil {
		return nil, ErrNoAuthor
	}

	return &Recipe{
		id:           uuid.New(),
		title:        title,
		description:  description,
		ingredients:  ingredients,
		instructions: instructions,
		author:       author,
		authorID:     authorID,
		voteState:    content.NewVoteState(),
		createdAt:    time.Now(),
	}, nil
}

// Rehydrate reconstructs a recipe from persisted state.
func Rehydrate(
	id uuid.UUID,
	title, description string,
	ingredients, instructions []string,
	authorID uuid.UUID,
	author, imageURL string,
	dietaryTags []string,
	difficulty, prepTime string,
	voteState content.VoteState,
	createdAt time.Time,
) *Recipe {
	return &Recipe{
		id:           id,
		title:        title,
		description:  description,
		ingredients:  ingredients,
		instructions: instructions,
		author:       author,
		authorID:     authorID,
		imageURL:     imageURL,
		dietaryTags:  dietaryTags,
		difficulty:   difficulty,
		prepTime:     prepTime,
		voteState:    voteState,
		createdAt:    createdAt,
	}
}

// SetDetails attaches the optional presentation fields supplied on submission.
func (r *Recipe) SetDetails(imageURL string, dietaryTags []string, difficulty, prepTime string) {
	r.imageURL = imageURL
	r.dietaryTags = dietaryTags
	r.difficulty = difficulty
	r.prepTime = prepTime
}

func (r *Recipe) ID() uuid.UUID                { return r.id }
func (r *Recipe) Title() string                { return r.title }
func (r *Recipe) Description() string          { return r.description }
func (r *Recipe) Ingredients() []string        { return r.ingredients }
func (r *Recipe) Instructions() []string       { return r.instructions }
func (r *Recipe) Author() string               { return r.author }
func (r *Recipe) AuthorID() uuid.UUID          { return r.authorID }
func (r *Recipe) ImageURL() string             { return r.imageURL }
func (r *Recipe) DietaryTags() []string        { return r.dietaryTags }
func (r *Recipe) Difficulty() string           { return r.difficulty }
func (r *Recipe) PrepTime() string             { return r.prepTime }
func (r *Recipe) VoteState() content.VoteState { return r.voteState }
func (r *Recipe) CreatedAt() time.Time         { return r.createdAt }

// TrustLabel returns the display form of the recipe's trust score.
func (r *Recipe) TrustLabel() content.TrustLabel {
	return content.LabelFor(r.voteState)
}

func validateTitle(title string) error {
	if len(title) < 3 {
		return ErrTitleTooShort
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
