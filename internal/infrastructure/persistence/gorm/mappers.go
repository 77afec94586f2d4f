package gorm

import (
	"encoding/json"

	"github.com/tastevine/v1/internal/domain/content"
	"github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/domain/remedy"
	"github.com/tastevine/v1/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		CreatedAt:    u.CreatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(m *UserModel) *user.User {
	return user.Rehydrate(m.ID, m.Email, m.Name, m.PasswordHash, m.IsActive, m.CreatedAt, m.LastLoginAt)
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	state := r.VoteState()
	return &RecipeModel{
		ID:           r.ID(),
		Title:        r.Title(),
		Description:  r.Description(),
		Ingredients:  StringSlice(r.Ingredients()),
		Instructions: StringSlice(r.Instructions()),
		AuthorID:     r.AuthorID(),
		AuthorName:   r.Author(),
		ImageURL:     r.ImageURL(),
		DietaryTags:  StringSlice(r.DietaryTags()),
		Difficulty:   r.Difficulty(),
		PrepTime:     r.PrepTime(),
		Votes:        state.Votes,
		TrustScore:   state.TrustScore,
		CreatedAt:    r.CreatedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Rehydrate(
		m.ID,
		m.Title, m.Description,
		[]string(m.Ingredients), []string(m.Instructions),
		m.AuthorID,
		m.AuthorName, m.ImageURL,
		[]string(m.DietaryTags),
		m.Difficulty, m.PrepTime,
		content.VoteState{Votes: m.Votes, TrustScore: m.TrustScore},
		m.CreatedAt,
	)
}

// RemedyToModel converts a domain remedy to a GORM model
func RemedyToModel(r *remedy.Remedy) *RemedyModel {
	state := r.VoteState()
	details := r.Details()
	return &RemedyModel{
		ID:             r.ID(),
		Title:          r.Title(),
		Description:    r.Description(),
		Ingredients:    StringSlice(r.Ingredients()),
		Instructions:   StringSlice(r.Instructions()),
		AuthorID:       r.AuthorID(),
		PrepTime:       details.PrepTime,
		CookTime:       details.CookTime,
		Servings:       details.Servings,
		Region:         details.Region,
		Tradition:      details.Tradition,
		HealthBenefits: StringSlice(details.HealthBenefits),
		Precautions:    StringSlice(details.Precautions),
		Illness:        details.Illness,
		Votes:          state.Votes,
		TrustScore:     state.TrustScore,
		CreatedAt:      r.CreatedAt(),
	}
}

// ModelToRemedy converts a GORM model to a domain remedy
func ModelToRemedy(m *RemedyModel) *remedy.Remedy {
	return remedy.Rehydrate(
		m.ID,
		m.Title, m.Description,
		[]string(m.Ingredients), []string(m.Instructions),
		m.AuthorID,
		remedy.Details{
			PrepTime:       m.PrepTime,
			CookTime:       m.CookTime,
			Servings:       m.Servings,
			Region:         m.Region,
			Tradition:      m.Tradition,
			HealthBenefits: []string(m.HealthBenefits),
			Precautions:    []string(m.Precautions),
			Illness:        m.Illness,
		},
		content.VoteState{Votes: m.Votes, TrustScore: m.TrustScore},
		m.CreatedAt,
	)
}

// GeneratedToDocument serializes a generated recipe for storage
func GeneratedToDocument(g *recipe.Generated) (JSONField, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}

	var doc JSONField
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DocumentToGenerated deserializes a stored generated recipe
func DocumentToGenerated(doc JSONField) (*recipe.Generated, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var g recipe.Generated
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}
