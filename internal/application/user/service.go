// Package user implements account registration and sign-in.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainuser "github.com/tastevine/v1/internal/domain/user"
	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

// TokenIssuer mints access tokens for authenticated users. Satisfied by
// the JWT service in the security package.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
}

// Recorder counts completed registrations. Nil disables recording.
type Recorder interface {
	RecordUserRegistered()
}

// Service implements inbound.UserService.
type Service struct {
	users    outbound.UserRepository
	tokens   TokenIssuer
	recorder Recorder
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(users outbound.UserRepository, tokens TokenIssuer, recorder Recorder, logger *zap.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		recorder: recorder,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Email = email
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fieldValidationError(err)
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewEmailAlreadyExistsError(email)
	}

	entity, err := domainuser.NewUser(email, cmd.Name, cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.users.Create(ctx, entity); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	if s.recorder != nil {
		s.recorder.RecordUserRegistered()
	}
	s.logger.Info("user registered", zap.String("user_id", entity.ID().String()))
	return s.issueFor(entity)
}

// Login verifies credentials and returns a fresh access token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Email = email
	if err := s.validate.Struct(cmd); err != nil {
		return nil, fieldValidationError(err)
	}

	entity, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, apperrors.NewInvalidCredentialsError()
		}
		return nil, apperrors.NewDatabaseError("find user", err)
	}

	if !entity.IsActive() || !entity.CheckPassword(cmd.Password) {
		return nil, apperrors.NewInvalidCredentialsError()
	}

	entity.RecordLogin()
	if err := s.users.UpdateLastLogin(ctx, entity.ID(), *entity.LastLoginAt()); err != nil {
		// A stale last-login stamp is not worth failing the sign-in.
		s.logger.Warn("last login update failed",
			zap.String("user_id", entity.ID().String()),
			zap.Error(err))
	}

	s.logger.Info("user signed in", zap.String("user_id", entity.ID().String()))
	return s.issueFor(entity)
}

// fieldValidationError maps validator failures onto per-field errors so
// registration forms can highlight the offending input. Field values are
// never echoed back; they may hold passwords.
func fieldValidationError(err error) *apperrors.AppError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	fields := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, apperrors.ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag()),
		})
	}
	return apperrors.NewValidationErrors(fields)
}

func (s *Service) issueFor(entity *domainuser.User) (*inbound.AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(entity.ID(), entity.Email())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue access token")
	}

	return &inbound.AuthResult{
		UserID:      entity.ID(),
		Email:       entity.Email(),
		Name:        entity.Name(),
		AccessToken: token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}
