package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	domainuser "github.com/tastevine/v1/internal/domain/user"
	"github.com/tastevine/v1/internal/ports/inbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
	"github.com/tastevine/v1/test/testutils"
)

type memoryUserRepo struct {
	users      map[uuid.UUID]*domainuser.User
	lastLogins map[uuid.UUID][]time.Time
	loginErr   error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:      make(map[uuid.UUID]*domainuser.User),
		lastLogins: make(map[uuid.UUID][]time.Time),
	}
}

func (m *memoryUserRepo) Create(_ context.Context, u *domainuser.User) error {
	m.users[u.ID()] = u
	return nil
}

func (m *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domainuser.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domainuser.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domainuser.User, error) {
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domainuser.ErrNotFound
}

func (m *memoryUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *memoryUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if m.loginErr != nil {
		return m.loginErr
	}
	m.lastLogins[id] = append(m.lastLogins[id], at)
	return nil
}

type staticIssuer struct{}

func (staticIssuer) Issue(userID uuid.UUID, _ string) (string, time.Time, error) {
	return "token-" + userID.String(), time.Now().Add(time.Hour), nil
}

type countingRecorder struct {
	registered int
}

func (c *countingRecorder) RecordUserRegistered() { c.registered++ }

type UserServiceTestSuite struct {
	suite.Suite
	repo     *memoryUserRepo
	recorder *countingRecorder
	service  *Service
	factory  *testutils.Factory
	ctx      context.Context
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.repo = newMemoryUserRepo()
	s.recorder = &countingRecorder{}
	s.service = NewService(s.repo, staticIssuer{}, s.recorder, zap.NewNop())
	s.factory = testutils.NewFactory(2)
	s.ctx = context.Background()
}

func (s *UserServiceTestSuite) TestRegister() {
	s.Run("creates the account and signs in", func() {
		cmd := s.factory.RegisterCommand()

		result, err := s.service.Register(s.ctx, cmd)

		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, result.UserID)
		s.NotEmpty(result.AccessToken)
		s.Equal(cmd.Name, result.Name)
		s.Equal(1, s.recorder.registered)
	})

	s.Run("normalizes the email address", func() {
		cmd := s.factory.RegisterCommand()
		cmd.Email = "  Taste@Example.COM "

		result, err := s.service.Register(s.ctx, cmd)

		s.Require().NoError(err)
		s.Equal("taste@example.com", result.Email)
	})

	s.Run("rejects duplicate emails regardless of case", func() {
		cmd := s.factory.RegisterCommand()
		_, err := s.service.Register(s.ctx, cmd)
		s.Require().NoError(err)

		dup := s.factory.RegisterCommand()
		dup.Email = "  " + cmd.Email + " "
		_, err = s.service.Register(s.ctx, dup)

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeEmailAlreadyExists))
	})

	s.Run("rejects short passwords naming the field", func() {
		cmd := s.factory.RegisterCommand()
		cmd.Password = "short"

		_, err := s.service.Register(s.ctx, cmd)

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeValidationFailed))
		s.Contains(err.Error(), "Password")

		// The rejected value itself must never be echoed back.
		appErr := err.(*apperrors.AppError)
		s.NotContains(fmt.Sprint(appErr.Metadata), "short")
	})
}

func (s *UserServiceTestSuite) TestLogin() {
	register := func() (inbound.RegisterCommand, *inbound.AuthResult) {
		cmd := s.factory.RegisterCommand()
		result, err := s.service.Register(s.ctx, cmd)
		s.Require().NoError(err)
		return cmd, result
	}

	s.Run("verifies credentials and stamps the login", func() {
		cmd, registered := register()

		result, err := s.service.Login(s.ctx, inbound.LoginCommand{
			Email:    cmd.Email,
			Password: cmd.Password,
		})

		s.Require().NoError(err)
		s.Equal(registered.UserID, result.UserID)
		s.Require().Len(s.repo.lastLogins[result.UserID], 1)
		s.WithinDuration(time.Now(), s.repo.lastLogins[result.UserID][0], time.Minute)
	})

	s.Run("wrong password and unknown email are indistinguishable", func() {
		cmd, _ := register()

		_, badPassword := s.service.Login(s.ctx, inbound.LoginCommand{
			Email:    cmd.Email,
			Password: "definitely-wrong",
		})
		_, badEmail := s.service.Login(s.ctx, inbound.LoginCommand{
			Email:    "nobody@example.com",
			Password: cmd.Password,
		})

		s.Require().Error(badPassword)
		s.Require().Error(badEmail)
		s.True(apperrors.Is(badPassword, apperrors.CodeInvalidCredentials))
		s.True(apperrors.Is(badEmail, apperrors.CodeInvalidCredentials))
		s.Equal(badPassword.Error(), badEmail.Error())
	})

	s.Run("a failed last-login stamp does not block sign-in", func() {
		cmd, _ := register()
		s.repo.loginErr = errors.New("write timeout")

		_, err := s.service.Login(s.ctx, inbound.LoginCommand{
			Email:    cmd.Email,
			Password: cmd.Password,
		})

		s.Require().NoError(err)
	})
}
