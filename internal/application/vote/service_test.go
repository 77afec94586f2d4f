package vote

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/domain/content"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

// memoryVoteStore is a mutex-serialized in-memory VoteStore. Serializing
// ApplyVote gives it the same atomicity contract as the database
// implementation, which the concurrency test below depends on.
type memoryVoteStore struct {
	mu     sync.Mutex
	states map[uuid.UUID]content.VoteState
	votes  map[string]content.VoteType
}

func newMemoryVoteStore() *memoryVoteStore {
	return &memoryVoteStore{
		states: make(map[uuid.UUID]content.VoteState),
		votes:  make(map[string]content.VoteType),
	}
}

func (m *memoryVoteStore) add(contentID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[contentID] = content.NewVoteState()
}

func voteKey(contentID, userID uuid.UUID) string {
	return contentID.String() + ":" + userID.String()
}

func (m *memoryVoteStore) ApplyVote(_ context.Context, _ content.Kind, contentID, userID uuid.UUID, vote content.VoteType) (content.VoteState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.states[contentID]
	if !ok {
		return content.VoteState{}, content.ErrNotFound
	}

	var prior *content.VoteType
	if existing, ok := m.votes[voteKey(contentID, userID)]; ok {
		prior = &existing
	}

	next, err := content.NextVoteState(cur, prior, vote)
	if err != nil {
		return content.VoteState{}, err
	}

	m.states[contentID] = next
	m.votes[voteKey(contentID, userID)] = vote
	return next, nil
}

func (m *memoryVoteStore) FindVote(_ context.Context, _ content.Kind, contentID, userID uuid.UUID) (*content.VoteType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vote, ok := m.votes[voteKey(contentID, userID)]; ok {
		return &vote, nil
	}
	return nil, nil
}

func (m *memoryVoteStore) VoteState(_ context.Context, _ content.Kind, contentID uuid.UUID) (content.VoteState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[contentID]
	if !ok {
		return content.VoteState{}, content.ErrNotFound
	}
	return state, nil
}

type VoteServiceTestSuite struct {
	suite.Suite
	store   *memoryVoteStore
	service *Service
	ctx     context.Context
}

func TestVoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoteServiceTestSuite))
}

func (s *VoteServiceTestSuite) SetupTest() {
	s.store = newMemoryVoteStore()
	s.service = NewService(s.store, nil, zap.NewNop())
	s.ctx = context.Background()
}

func (s *VoteServiceTestSuite) TestCastVote() {
	s.Run("first upvote", func() {
		contentID, userID := uuid.New(), uuid.New()
		s.store.add(contentID)

		result, err := s.service.CastVote(s.ctx, content.KindRecipe, contentID, userID, content.VoteUp)

		s.Require().NoError(err)
		s.Equal(1, result.Votes)
		s.Equal(52, result.TrustScore)
		s.False(result.Trust.Reliable)
	})

	s.Run("rejects unauthenticated callers", func() {
		contentID := uuid.New()
		s.store.add(contentID)

		_, err := s.service.CastVote(s.ctx, content.KindRecipe, contentID, uuid.Nil, content.VoteUp)

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeAuthenticationRequired))

		state, stateErr := s.store.VoteState(s.ctx, content.KindRecipe, contentID)
		s.Require().NoError(stateErr)
		s.Equal(content.NewVoteState(), state)
	})

	s.Run("rejects invalid vote types", func() {
		contentID := uuid.New()
		s.store.add(contentID)

		_, err := s.service.CastVote(s.ctx, content.KindRecipe, contentID, uuid.New(), content.VoteType("sideways"))

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeValidationFailed))
	})

	s.Run("rejects duplicate votes without mutation", func() {
		contentID, userID := uuid.New(), uuid.New()
		s.store.add(contentID)

		_, err := s.service.CastVote(s.ctx, content.KindRecipe, contentID, userID, content.VoteDown)
		s.Require().NoError(err)

		_, err = s.service.CastVote(s.ctx, content.KindRecipe, contentID, userID, content.VoteDown)
		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeDuplicateVote))

		state, stateErr := s.store.VoteState(s.ctx, content.KindRecipe, contentID)
		s.Require().NoError(stateErr)
		s.Equal(content.VoteState{Votes: -1, TrustScore: 48}, state)
	})

	s.Run("reversal applies double weight", func() {
		contentID, userID := uuid.New(), uuid.New()
		s.store.add(contentID)

		_, err := s.service.CastVote(s.ctx, content.KindRemedy, contentID, userID, content.VoteUp)
		s.Require().NoError(err)

		result, err := s.service.CastVote(s.ctx, content.KindRemedy, contentID, userID, content.VoteDown)

		s.Require().NoError(err)
		s.Equal(-1, result.Votes)
		s.Equal(48, result.TrustScore)
	})

	s.Run("unknown content", func() {
		_, err := s.service.CastVote(s.ctx, content.KindRecipe, uuid.New(), uuid.New(), content.VoteUp)

		s.Require().Error(err)
		s.True(apperrors.Is(err, apperrors.CodeContentNotFound))
	})
}

// TestConcurrentVoters drives many distinct first-time voters at one item
// in parallel. Every vote must land: the final count and trust score are
// exactly the sums of the individual deltas. The counts are chosen so no
// serialization order can push the running trust score into a clamp
// (50+2*20 = 90 at most, 50-2*15 = 20 at least), keeping the final
// values independent of interleaving.
func (s *VoteServiceTestSuite) TestConcurrentVoters() {
	const upvoters, downvoters = 20, 15

	contentID := uuid.New()
	s.store.add(contentID)

	var wg sync.WaitGroup
	cast := func(vote content.VoteType) {
		defer wg.Done()
		_, err := s.service.CastVote(s.ctx, content.KindRecipe, contentID, uuid.New(), vote)
		s.NoError(err)
	}

	wg.Add(upvoters + downvoters)
	for i := 0; i < upvoters; i++ {
		go cast(content.VoteUp)
	}
	for i := 0; i < downvoters; i++ {
		go cast(content.VoteDown)
	}
	wg.Wait()

	state, err := s.store.VoteState(s.ctx, content.KindRecipe, contentID)
	s.Require().NoError(err)
	s.Equal(upvoters-downvoters, state.Votes)

	// 50 + 2*20 - 2*15 = 60
	s.Equal(60, state.TrustScore)
}

func (s *VoteServiceTestSuite) TestCheckUserVote() {
	s.Run("returns nil before voting", func() {
		contentID := uuid.New()
		s.store.add(contentID)

		vote, err := s.service.CheckUserVote(s.ctx, content.KindRecipe, contentID, uuid.New())

		s.Require().NoError(err)
		s.Nil(vote)
	})

	s.Run("returns the effective vote after a flip", func() {
		contentID, userID := uuid.New(), uuid.New()
		s.store.add(contentID)

		_, err := s.service.CastVote(s.ctx, content.KindRecipe, contentID, userID, content.VoteUp)
		s.Require().NoError(err)
		_, err = s.service.CastVote(s.ctx, content.KindRecipe, contentID, userID, content.VoteDown)
		s.Require().NoError(err)

		vote, err := s.service.CheckUserVote(s.ctx, content.KindRecipe, contentID, userID)

		s.Require().NoError(err)
		s.Require().NotNil(vote)
		s.Equal(content.VoteDown, *vote)
	})

	s.Run("unauthenticated callers get nil", func() {
		vote, err := s.service.CheckUserVote(s.ctx, content.KindRecipe, uuid.New(), uuid.Nil)

		s.Require().NoError(err)
		s.Nil(vote)
	})
}
