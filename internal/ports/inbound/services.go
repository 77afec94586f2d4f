// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use-case interfaces that HTTP handlers call into.
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/tastevine/v1/internal/domain/content"
	"github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/domain/remedy"
)

// VoteService is the vote / trust-score ledger.
type VoteService interface {
	// CastVote applies one up/down vote from userID to the identified
	// content item and returns the item's new vote state.
	CastVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID, vote content.VoteType) (*VoteResult, error)

	// CheckUserVote reports the user's current effective vote on the
	// item, or nil if none. Unauthenticated callers get nil.
	CheckUserVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID) (*content.VoteType, error)
}

// VoteResult is the outcome of a successful vote.
type VoteResult struct {
	ContentID  uuid.UUID          `json:"content_id"`
	Votes      int                `json:"votes"`
	TrustScore int                `json:"trust_score"`
	Trust      content.TrustLabel `json:"trust"`
}

// RecipeService defines the community recipe use cases.
type RecipeService interface {
	SubmitRecipe(ctx context.Context, cmd SubmitRecipeCommand) (*RecipeDTO, error)
	GetRecipeByID(ctx context.Context, id uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, params PaginationParams) (*RecipeList, error)
	SaveGenerated(ctx context.Context, userID uuid.UUID, generated *recipe.Generated) (uuid.UUID, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]SavedRecipeDTO, error)
}

// SubmitRecipeCommand contains data for submitting a community recipe.
type SubmitRecipeCommand struct {
	AuthorID     uuid.UUID
	Title        string   `validate:"required,min=3,max=200"`
	Description  string   `validate:"max=2000"`
	Ingredients  []string `validate:"required,min=1,dive,required"`
	Instructions []string `validate:"required,min=1,dive,required"`
	ImageURL     string
	DietaryTags  []string
	Difficulty   string
	PrepTime     string
}

// RecipeDTO is the transfer shape for community recipes.
type RecipeDTO struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Ingredients  []string           `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Author       string             `json:"author"`
	ImageURL     string             `json:"image_url,omitempty"`
	DietaryTags  []string           `json:"dietary_tags,omitempty"`
	Difficulty   string             `json:"difficulty,omitempty"`
	PrepTime     string             `json:"prep_time,omitempty"`
	Votes        int                `json:"votes"`
	TrustScore   int                `json:"trust_score"`
	Trust        content.TrustLabel `json:"trust"`
	CreatedAt    string             `json:"created_at"`
}

// RecipeList is a paginated recipe result.
type RecipeList struct {
	Recipes  []RecipeDTO `json:"recipes"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// SavedRecipeDTO is a persisted AI-generated recipe.
type SavedRecipeDTO struct {
	ID        uuid.UUID        `json:"id"`
	Recipe    recipe.Generated `json:"recipe"`
	CreatedAt string           `json:"created_at"`
}

// PaginationParams for paginated queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// RemedyService defines the shared remedy use cases.
type RemedyService interface {
	SubmitRemedy(ctx context.Context, cmd SubmitRemedyCommand) (*RemedyDTO, error)
	ListRemedies(ctx context.Context, params PaginationParams) (*RemedyList, error)
	GenerateRemedy(ctx context.Context, cmd GenerateRemedyCommand) (*RemedyDTO, error)
}

// SubmitRemedyCommand contains data for sharing a remedy.
type SubmitRemedyCommand struct {
	AuthorID       uuid.UUID
	Title          string   `validate:"required"`
	Description    string   `validate:"required"`
	Ingredients    []string `validate:"required,min=1,dive,required"`
	Instructions   []string `validate:"required,min=1,dive,required"`
	PrepTime       string
	CookTime       string
	Servings       string
	Region         string
	Tradition      string
	HealthBenefits []string
	Precautions    []string
}

// GenerateRemedyCommand drives AI remedy generation.
type GenerateRemedyCommand struct {
	UserID        uuid.UUID
	Illness       string `validate:"required"`
	Age           string
	DietaryInfo   []string
	Preferences   []string
	Allergies     []string
	TimeAvailable string
	Cuisines      []string
	Ingredients   []string
}

// RemedyDTO is the transfer shape for remedies.
type RemedyDTO struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Ingredients    []string           `json:"ingredients"`
	Instructions   []string           `json:"instructions"`
	PrepTime       string             `json:"prep_time,omitempty"`
	CookTime       string             `json:"cook_time,omitempty"`
	Servings       string             `json:"servings,omitempty"`
	Region         string             `json:"region,omitempty"`
	Tradition      string             `json:"tradition,omitempty"`
	HealthBenefits []string           `json:"health_benefits,omitempty"`
	Precautions    []string           `json:"precautions,omitempty"`
	Illness        string             `json:"illness,omitempty"`
	Votes          int                `json:"votes"`
	TrustScore     int                `json:"trust_score"`
	Trust          content.TrustLabel `json:"trust"`
	CreatedAt      string             `json:"created_at"`
}

// RemedyList is a paginated remedy result.
type RemedyList struct {
	Remedies []RemedyDTO `json:"remedies"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// AIService defines the generative-AI use cases.
type AIService interface {
	GenerateRecipe(ctx context.Context, cmd GenerateRecipeCommand) (*recipe.Generated, error)
	SuggestDishes(ctx context.Context, ingredients []string) (string, error)
	AnalyzeImage(ctx context.Context, data []byte, mimeType string) ([]string, error)
}

// GenerateRecipeCommand drives AI recipe generation.
type GenerateRecipeCommand struct {
	Ingredients   []string `validate:"required,min=1,dive,required"`
	Cuisine       string
	Restrictions  []string
	Proficiency   string
	TimeAvailable string
}

// UserService defines authentication use cases.
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)
	Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error)
}

// RegisterCommand contains data for account creation.
type RegisterCommand struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	Password string `validate:"required,min=8"`
}

// LoginCommand contains sign-in credentials.
type LoginCommand struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AuthResult is the outcome of a successful register/login.
type AuthResult struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   string    `json:"expires_at"`
}

// Remedy helpers shared by services and handlers.

// RemedyToDTO converts a remedy entity to its transfer shape.
func RemedyToDTO(r *remedy.Remedy) *RemedyDTO {
	d := r.Details()
	state := r.VoteState()
	return &RemedyDTO{
		ID:             r.ID(),
		Title:          r.Title(),
		Description:    r.Description(),
		Ingredients:    r.Ingredients(),
		Instructions:   r.Instructions(),
		PrepTime:       d.PrepTime,
		CookTime:       d.CookTime,
		Servings:       d.Servings,
		Region:         d.Region,
		Tradition:      d.Tradition,
		HealthBenefits: d.HealthBenefits,
		Precautions:    d.Precautions,
		Illness:        d.Illness,
		Votes:          state.Votes,
		TrustScore:     state.TrustScore,
		Trust:          r.TrustLabel(),
		CreatedAt:      r.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}
}
