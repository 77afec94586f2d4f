// Package recipe implements the community recipe use cases.
package recipe

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/domain/content"
	domainrecipe "github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Recorder counts published recipes. Nil disables recording.
type Recorder interface {
	RecordRecipeCreated()
}

// Service implements inbound.RecipeService.
type Service struct {
	recipes  outbound.RecipeRepository
	saved    outbound.SavedRecipeRepository
	users    outbound.UserRepository
	recorder Recorder
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(
	recipes outbound.RecipeRepository,
	saved outbound.SavedRecipeRepository,
	users outbound.UserRepository,
	recorder Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipes:  recipes,
		saved:    saved,
		users:    users,
		recorder: recorder,
		validate: validator.New(),
		logger:   logger,
	}
}

// SubmitRecipe publishes a community recipe under the caller's name.
func (s *Service) SubmitRecipe(ctx context.Context, cmd inbound.SubmitRecipeCommand) (*inbound.RecipeDTO, error) {
	if cmd.AuthorID == uuid.Nil {
		return nil, apperrors.NewAuthenticationRequiredError()
	}
	if err := s.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	author, err := s.users.FindByID(ctx, cmd.AuthorID)
	if err != nil {
		return nil, apperrors.NewUserNotFoundError(cmd.AuthorID.String())
	}

	entity, err := domainrecipe.NewRecipe(cmd.Title, cmd.Description, cmd.Ingredients, cmd.Instructions, cmd.AuthorID, author.Name())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	entity.SetDetails(cmd.ImageURL, cmd.DietaryTags, cmd.Difficulty, cmd.PrepTime)

	if err := s.recipes.Create(ctx, entity); err != nil {
		s.logger.Error("recipe create failed", zap.Error(err))
		return nil, apperrors.NewDatabaseError("create recipe", err)
	}

	if s.recorder != nil {
		s.recorder.RecordRecipeCreated()
	}
	s.logger.Info("recipe submitted",
		zap.String("recipe_id", entity.ID().String()),
		zap.String("author_id", cmd.AuthorID.String()))

	return toDTO(entity), nil
}

// GetRecipeByID loads one community recipe.
func (s *Service) GetRecipeByID(ctx context.Context, id uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainrecipe.ErrNotFound) {
			return nil, apperrors.NewContentNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find recipe", err)
	}
	return toDTO(entity), nil
}

// ListRecipes returns the newest community recipes, paginated.
func (s *Service) ListRecipes(ctx context.Context, params inbound.PaginationParams) (*inbound.RecipeList, error) {
	page, size := normalizePage(params)

	entities, total, err := s.recipes.FindNewest(ctx, (page-1)*size, size)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list recipes", err)
	}

	dtos := make([]inbound.RecipeDTO, len(entities))
	for i, entity := range entities {
		dtos[i] = *toDTO(entity)
	}

	return &inbound.RecipeList{
		Recipes:  dtos,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// SaveGenerated keeps an AI-generated recipe in the caller's collection.
func (s *Service) SaveGenerated(ctx context.Context, userID uuid.UUID, generated *domainrecipe.Generated) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, apperrors.NewAuthenticationRequiredError()
	}
	if generated == nil || generated.Title == "" {
		return uuid.Nil, apperrors.NewValidationError("a recipe to save is required")
	}

	id, err := s.saved.Save(ctx, userID, generated)
	if err != nil {
		return uuid.Nil, apperrors.NewDatabaseError("save generated recipe", err)
	}

	s.logger.Info("generated recipe saved",
		zap.String("saved_id", id.String()),
		zap.String("user_id", userID.String()))
	return id, nil
}

// ListSaved returns the caller's saved generated recipes.
func (s *Service) ListSaved(ctx context.Context, userID uuid.UUID) ([]inbound.SavedRecipeDTO, error) {
	if userID == uuid.Nil {
		return nil, apperrors.NewAuthenticationRequiredError()
	}

	records, err := s.saved.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list saved recipes", err)
	}

	dtos := make([]inbound.SavedRecipeDTO, len(records))
	for i, record := range records {
		dtos[i] = inbound.SavedRecipeDTO{
			ID:        record.ID,
			Recipe:    record.Recipe,
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
		}
	}
	return dtos, nil
}

func normalizePage(params inbound.PaginationParams) (page, size int) {
	page, size = params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func toDTO(entity *domainrecipe.Recipe) *inbound.RecipeDTO {
	state := entity.VoteState()
	return &inbound.RecipeDTO{
		ID:           entity.ID(),
		Title:        entity.Title(),
		Description:  entity.Description(),
		Ingredients:  entity.Ingredients(),
		Instructions: entity.Instructions(),
		Author:       entity.Author(),
		ImageURL:     entity.ImageURL(),
		DietaryTags:  entity.DietaryTags(),
		Difficulty:   entity.Difficulty(),
		PrepTime:     entity.PrepTime(),
		Votes:        state.Votes,
		TrustScore:   state.TrustScore,
		Trust:        content.LabelFor(state),
		CreatedAt:    entity.CreatedAt().Format(time.RFC3339),
	}
}
