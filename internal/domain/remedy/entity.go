// Package remedy contains the domain model for shared traditional remedies.
package remedy

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tastevine/v1/internal/domain/content"
)

// Domain errors for remedy operations
var (
	ErrTitleRequired        = errors.New("remedy title is required")
	ErrDescriptionRequired  = errors.New("remedy description is required")
	ErrIngredientsRequired  = errors.New("remedy ingredients are required")
	ErrInstructionsRequired = errors.New("remedy instructions are required")
	ErrNotFound             = errors.New("remedy not found")
)

// Remedy is a community-shared traditional remedy, either submitted
// directly by a user or generated by the model and saved.
type Remedy struct {
	id             uuid.UUID
	title          string
	description    string
	ingredients    []string
	instructions   []string
	prepTime       string
	cookTime       string
	servings       string
	region         string
	tradition      string
	healthBenefits []string
	precautions    []string
	illness        string
	authorID       uuid.UUID
	voteState      content.VoteState
	createdAt      time.Time
}

// Details bundles the optional descriptive fields of a remedy.
type Details struct {
	PrepTime       string
	CookTime       string
	Servings       string
	Region         string
	Tradition      string
	HealthBenefits []string
	Precautions    []string
	Illness        string
}

// NewRemedy creates a remedy with the neutral voting prior.
func NewRemedy(title, description string, ingredients, instructions []string, authorID uuid.UUID, details Details) (*Remedy, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if len(ingredients) == 0 {
		return nil, ErrIngredientsRequired
	}
	if len(instructions) == 0 {
		return nil, ErrInstructionsRequired
	}

	return &Remedy{
		id:             uuid.New(),
		title:          title,
		description:    description,
		ingredients:    ingredients,
		instructions:   instructions,
		prepTime:       details.PrepTime,
		cookTime:       details.CookTime,
		servings:       details.Servings,
		region:         details.Region,
		tradition:      details.Tradition,
		healthBenefits: details.HealthBenefits,
		precautions:    details.Precautions,
		illness:        details.Illness,
		authorID:       authorID,
		voteState:      content.NewVoteState(),
		createdAt:      time.Now(),
	}, nil
}

// Rehydrate reconstructs a remedy from persisted state.
func Rehydrate(
	id uuid.UUID,
	title, description string,
	ingredients, instructions []string,
	authorID uuid.UUID,
	details Details,
	voteState content.VoteState,
	createdAt time.Time,
) *Remedy {
	return &Remedy{
		id:             id,
		title:          title,
		description:    description,
		ingredients:    ingredients,
		instructions:   instructions,
		prepTime:       details.PrepTime,
		cookTime:       details.CookTime,
		servings:       details.Servings,
		region:         details.Region,
		tradition:      details.Tradition,
		healthBenefits: details.HealthBenefits,
		precautions:    details.Precautions,
		illness:        details.Illness,
		authorID:       authorID,
		voteState:      voteState,
		createdAt:      createdAt,
	}
}

func (r *Remedy) ID() uuid.UUID                { return r.id }
func (r *Remedy) Title() string                { return r.title }
func (r *Remedy) Description() string          { return r.description }
func (r *Remedy) Ingredients() []string        { return r.ingredients }
func (r *Remedy) Instructions() []string       { return r.instructions }
func (r *Remedy) AuthorID() uuid.UUID          { return r.authorID }
func (r *Remedy) VoteState() content.VoteState { return r.voteState }
func (r *Remedy) CreatedAt() time.Time         { return r.createdAt }

// Details returns the optional descriptive fields.
func (r *Remedy) Details() Details {
	return Details{
		PrepTime:       r.prepTime,
		CookTime:       r.cookTime,
		Servings:       r.servings,
		Region:         r.region,
		Tradition:      r.tradition,
		HealthBenefits: r.healthBenefits,
		Precautions:    r.precautions,
		Illness:        r.illness,
	}
}

// TrustLabel returns the display form of the remedy's trust score.
func (r *Remedy) TrustLabel() content.TrustLabel {
	return content.LabelFor(r.voteState)
}
