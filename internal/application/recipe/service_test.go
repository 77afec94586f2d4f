package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	domainrecipe "github.com/tastevine/v1/internal/domain/recipe"
	domainuser "github.com/tastevine/v1/internal/domain/user"
	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
	"github.com/tastevine/v1/test/testutils"
)

type memoryRecipeRepo struct {
	items map[uuid.UUID]*domainrecipe.Recipe
	order []uuid.UUID
}

func newMemoryRecipeRepo() *memoryRecipeRepo {
	return &memoryRecipeRepo{items: make(map[uuid.UUID]*domainrecipe.Recipe)}
}

func (m *memoryRecipeRepo) Create(_ context.Context, r *domainrecipe.Recipe) error {
	m.items[r.ID()] = r
	m.order = append(m.order, r.ID())
	return nil
}

func (m *memoryRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*domainrecipe.Recipe, error) {
	r, ok := m.items[id]
	if !ok {
		return nil, domainrecipe.ErrNotFound
	}
	return r, nil
}

func (m *memoryRecipeRepo) FindNewest(_ context.Context, offset, limit int) ([]*domainrecipe.Recipe, int, error) {
	// Newest first.
	var out []*domainrecipe.Recipe
	for i := len(m.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.items[m.order[i]])
	}
	return out, len(m.order), nil
}

type memorySavedRepo struct {
	records []outbound.SavedRecipe
}

func (m *memorySavedRepo) Save(_ context.Context, userID uuid.UUID, generated *domainrecipe.Generated) (uuid.UUID, error) {
	id := uuid.New()
	m.records = append(m.records, outbound.SavedRecipe{
		ID:        id,
		UserID:    userID,
		Recipe:    *generated,
		CreatedAt: time.Now(),
	})
	return id, nil
}

func (m *memorySavedRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]outbound.SavedRecipe, error) {
	var out []outbound.SavedRecipe
	for _, record := range m.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

type memoryUserRepo struct {
	users map[uuid.UUID]*domainuser.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*domainuser.User)}
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

func (m *memoryUserRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error {
	return nil
}

type countingRecorder struct {
	created int
}

func (c *countingRecorder) RecordRecipeCreated() { c.created++ }

type RecipeServiceTestSuite struct {
	suite.Suite
	recipes  *memoryRecipeRepo
	saved    *memorySavedRepo
	users    *memoryUserRepo
	recorder *countingRecorder
	service  *Service
	factory  *testutils.Factory
	author   *domainuser.User
	ctx      context.Context
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}

func (s *RecipeServiceTestSuite) SetupTest() {
	s.recipes = newMemoryRecipeRepo()
	s.saved = &memorySavedRepo{}
	s.users = newMemoryUserRepo()
	s.recorder = &countingRecorder{}
	s.service = NewService(s.recipes, s.saved, s.users, s.recorder, zap.NewNop())
	s.factory = testutils.NewFactory(1)
	s.ctx = context.Background()

	s.author = s.factory.User("hunter2-hunter2")
	s.Require().NoError(s.users.Create(s.ctx, s.author))
}

func (s *RecipeServiceTestSuite) TestSubmitRecipe() {
	s.Run("publishes under the author's name", func() {
		cmd := s.factory.SubmitRecipeCommand(s.author.ID())

		dto, err := s.service.SubmitRecipe(s.ctx, cmd)

		s.Require().NoError(err)
		s.Equal(cmd.Title, dto.Title)
		s.Equal(s.author.Name(), dto.Author)
		s.Equal(0, dto.Votes)
		s.Equal(50, dto.TrustScore)
		s.Equal(1, s.recorder.created)

		stored, err := s.recipes.FindByID(s.ctx, dto.ID)
		s.Require().NoError(err)
		s.Equal(cmd.Ingredients, stored.Ingredients())
	})

	s.Run("rejects unauthenticated callers", func() {
		cmd := s.factory.SubmitRecipeCommand(uuid.Nil)

		_, err := s.service.SubmitRecipe(s.ctx, cmd)

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeAuthenticationRequired))
	})

	s.Run("rejects empty ingredient lists", func() {
		cmd := s.factory.SubmitRecipeCommand(s.author.ID())
		cmd.Ingredients = nil

		_, err := s.service.SubmitRecipe(s.ctx, cmd)

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	s.Run("rejects unknown authors", func() {
		cmd := s.factory.SubmitRecipeCommand(uuid.New())

		_, err := s.service.SubmitRecipe(s.ctx, cmd)

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeUserNotFound))
	})
}

func (s *RecipeServiceTestSuite) TestGetRecipeByID() {
	s.Run("returns a stored recipe", func() {
		entity := s.factory.Recipe(s.author.ID(), s.author.Name())
		s.Require().NoError(s.recipes.Create(s.ctx, entity))

		dto, err := s.service.GetRecipeByID(s.ctx, entity.ID())

		s.Require().NoError(err)
		s.Equal(entity.Title(), dto.Title)
	})

	s.Run("maps unknown ids to content-not-found", func() {
		_, err := s.service.GetRecipeByID(s.ctx, uuid.New())

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeContentNotFound))
	})
}

func (s *RecipeServiceTestSuite) TestListRecipes() {
	for i := 0; i < 25; i++ {
		s.Require().NoError(s.recipes.Create(s.ctx, s.factory.Recipe(s.author.ID(), s.author.Name())))
	}

	s.Run("defaults the page size", func() {
		list, err := s.service.ListRecipes(s.ctx, inbound.PaginationParams{})

		s.Require().NoError(err)
		s.Len(list.Recipes, 20)
		s.Equal(25, list.Total)
		s.Equal(1, list.Page)
	})

	s.Run("serves later pages", func() {
		list, err := s.service.ListRecipes(s.ctx, inbound.PaginationParams{Page: 2, PageSize: 20})

		s.Require().NoError(err)
		s.Len(list.Recipes, 5)
		s.Equal(2, list.Page)
	})

	s.Run("caps oversized page requests", func() {
		list, err := s.service.ListRecipes(s.ctx, inbound.PaginationParams{Page: 1, PageSize: 50000})

		s.Require().NoError(err)
		s.Equal(100, list.PageSize)
	})
}

func (s *RecipeServiceTestSuite) TestSaveGenerated() {
	s.Run("keeps a generated recipe for the user", func() {
		generated := s.factory.GeneratedRecipe()

		id, err := s.service.SaveGenerated(s.ctx, s.author.ID(), generated)

		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, id)

		saved, err := s.service.ListSaved(s.ctx, s.author.ID())
		s.Require().NoError(err)
		s.Require().Len(saved, 1)
		s.Equal(generated.Title, saved[0].Recipe.Title)
	})

	s.Run("rejects unauthenticated callers", func() {
		_, err := s.service.SaveGenerated(s.ctx, uuid.Nil, s.factory.GeneratedRecipe())

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeAuthenticationRequired))
	})

	s.Run("rejects empty recipes", func() {
		_, err := s.service.SaveGenerated(s.ctx, s.author.ID(), &domainrecipe.Generated{})

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}
