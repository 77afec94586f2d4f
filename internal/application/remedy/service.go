// Package remedy implements the shared remedy use cases, including
// AI-assisted remedy generation.
package remedy

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/application/ai"
	domainremedy "github.com/tastevine/v1/internal/domain/remedy"
	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Generator produces remedies from a description of the caller's needs.
// Satisfied by *ai.Service.
type Generator interface {
	GenerateRemedy(ctx context.Context, cmd inbound.GenerateRemedyCommand) (*ai.GeneratedRemedy, error)
}

// Recorder counts shared remedies. Nil disables recording.
type Recorder interface {
	RecordRemedyCreated()
}

// Service implements inbound.RemedyService.
type Service struct {
	remedies  outbound.RemedyRepository
	users     outbound.UserRepository
	generator Generator
	recorder  Recorder
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewService(remedies outbound.RemedyRepository, users outbound.UserRepository, generator Generator, recorder Recorder, logger *zap.Logger) *Service {
	return &Service{
		remedies:  remedies,
		users:     users,
		generator: generator,
		recorder:  recorder,
		validate:  validator.New(),
		logger:    logger,
	}
}

// SubmitRemedy publishes a remedy shared by the caller.
func (s *Service) SubmitRemedy(ctx context.Context, cmd inbound.SubmitRemedyCommand) (*inbound.RemedyDTO, error) {
	if cmd.AuthorID == uuid.Nil {
		return nil, apperrors.NewAuthenticationRequiredError()
	}
	if err := s.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	known, err := s.users.Exists(ctx, cmd.AuthorID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find user", err)
	}
	if !known {
		return nil, apperrors.NewUserNotFoundError(cmd.AuthorID.String())
	}

	entity, err := domainremedy.NewRemedy(cmd.Title, cmd.Description, cmd.Ingredients, cmd.Instructions, cmd.AuthorID, domainremedy.Details{
		PrepTime:       cmd.PrepTime,
		CookTime:       cmd.CookTime,
		Servings:       cmd.Servings,
		Region:         cmd.Region,
		Tradition:      cmd.Tradition,
		HealthBenefits: cmd.HealthBenefits,
		Precautions:    cmd.Precautions,
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.remedies.Create(ctx, entity); err != nil {
		s.logger.Error("remedy create failed", zap.Error(err))
		return nil, apperrors.NewDatabaseError("create remedy", err)
	}

	if s.recorder != nil {
		s.recorder.RecordRemedyCreated()
	}
	s.logger.Info("remedy shared",
		zap.String("remedy_id", entity.ID().String()),
		zap.String("author_id", cmd.AuthorID.String()))

	return inbound.RemedyToDTO(entity), nil
}

// ListRemedies returns the newest shared remedies, paginated.
func (s *Service) ListRemedies(ctx context.Context, params inbound.PaginationParams) (*inbound.RemedyList, error) {
	page, size := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	entities, total, err := s.remedies.FindNewest(ctx, (page-1)*size, size)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list remedies", err)
	}

	dtos := make([]inbound.RemedyDTO, len(entities))
	for i, entity := range entities {
		dtos[i] = *inbound.RemedyToDTO(entity)
	}

	return &inbound.RemedyList{
		Remedies: dtos,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// GenerateRemedy asks the model for a remedy matching the caller's
// condition and keeps the result in the shared collection.
func (s *Service) GenerateRemedy(ctx context.Context, cmd inbound.GenerateRemedyCommand) (*inbound.RemedyDTO, error) {
	if cmd.UserID == uuid.Nil {
		return nil, apperrors.NewAuthenticationRequiredError()
	}
	if err := s.validate.Struct(cmd); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	start := time.Now()
	generated, err := s.generator.GenerateRemedy(ctx, cmd)
	if err != nil {
		return nil, ai.ToAppError(err)
	}

	entity, err := domainremedy.NewRemedy(generated.Title, generated.Description, generated.Ingredients, generated.Instructions, cmd.UserID, domainremedy.Details{
		CookTime:       generated.CookingTime,
		Servings:       generated.Servings,
		Region:         generated.Region,
		Tradition:      generated.Tradition,
		HealthBenefits: generated.HealthBenefits,
		Precautions:    generated.Precautions,
		Illness:        cmd.Illness,
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.remedies.Create(ctx, entity); err != nil {
		s.logger.Error("generated remedy save failed", zap.Error(err))
		return nil, apperrors.NewDatabaseError("save generated remedy", err)
	}

	if s.recorder != nil {
		s.recorder.RecordRemedyCreated()
	}
	s.logger.Info("remedy generated",
		zap.String("remedy_id", entity.ID().String()),
		zap.String("illness", cmd.Illness),
		zap.Duration("duration", time.Since(start)))

	return inbound.RemedyToDTO(entity), nil
}
