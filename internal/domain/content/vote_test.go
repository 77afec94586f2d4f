package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// VotePolicyTestSuite provides a test suite for the vote policy
type VotePolicyTestSuite struct {
	suite.Suite
}

func ptr(v VoteType) *VoteType {
	return &v
}

// TestFirstVote tests the single-unit delta for a user's first vote
func (suite *VotePolicyTestSuite) TestFirstVote() {
	suite.Run("UpVote_ShouldApplySingleDelta", func() {
		state := NewVoteState()

		next, err := NextVoteState(state, nil, VoteUp)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, next.Votes)
		assert.Equal(suite.T(), 52, next.TrustScore)
	})

	suite.Run("DownVote_ShouldApplySingleDelta", func() {
		state := NewVoteState()

		next, err := NextVoteState(state, nil, VoteDown)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), -1, next.Votes)
		assert.Equal(suite.T(), 48, next.TrustScore)
	})

	suite.Run("InvalidVoteType_ShouldReturnError", func() {
		state := NewVoteState()

		next, err := NextVoteState(state, nil, VoteType("sideways"))

		assert.ErrorIs(suite.T(), err, ErrInvalidVoteType)
		assert.Equal(suite.T(), state, next)
	})
}

// TestRepeatVote tests that re-casting an identical vote is rejected
func (suite *VotePolicyTestSuite) TestRepeatVote() {
	suite.Run("SameUpVote_ShouldReturnDuplicateVote", func() {
		state := VoteState{Votes: 1, TrustScore: 52}

		next, err := NextVoteState(state, ptr(VoteUp), VoteUp)

		assert.ErrorIs(suite.T(), err, ErrDuplicateVote)
		assert.Equal(suite.T(), state, next, "state must be unchanged on rejection")
	})

	suite.Run("SameDownVote_ShouldReturnDuplicateVote", func() {
		state := VoteState{Votes: -1, TrustScore: 48}

		next, err := NextVoteState(state, ptr(VoteDown), VoteDown)

		assert.ErrorIs(suite.T(), err, ErrDuplicateVote)
		assert.Equal(suite.T(), state, next)
	})
}

// TestVoteFlip tests the double-weighted delta when a user flips their vote
func (suite *VotePolicyTestSuite) TestVoteFlip() {
	suite.Run("UpThenDown_ShouldApplyDoubleDelta", func() {
		// After an up vote from 0/50
		state := VoteState{Votes: 1, TrustScore: 52}

		next, err := NextVoteState(state, ptr(VoteUp), VoteDown)

		require.NoError(suite.T(), err)
		// Net effect relative to 0/50 equals a single down vote
		assert.Equal(suite.T(), -1, next.Votes)
		assert.Equal(suite.T(), 48, next.TrustScore)
	})

	suite.Run("DownThenUp_ShouldApplyDoubleDelta", func() {
		state := VoteState{Votes: -1, TrustScore: 48}

		next, err := NextVoteState(state, ptr(VoteDown), VoteUp)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, next.Votes)
		assert.Equal(suite.T(), 52, next.TrustScore)
	})
}

// TestTrustBounds tests that the trust score never leaves [0,100]
func (suite *VotePolicyTestSuite) TestTrustBounds() {
	suite.Run("RepeatedDownVotes_ShouldClampAtZero", func() {
		state := NewVoteState()

		// Distinct users voting down until well past the floor
		for i := 0; i < 40; i++ {
			next, err := NextVoteState(state, nil, VoteDown)
			require.NoError(suite.T(), err)
			assert.GreaterOrEqual(suite.T(), next.TrustScore, TrustScoreMin)
			assert.LessOrEqual(suite.T(), next.TrustScore, TrustScoreMax)
			state = next
		}

		assert.Equal(suite.T(), TrustScoreMin, state.TrustScore)
		assert.Equal(suite.T(), -40, state.Votes)
	})

	suite.Run("RepeatedUpVotes_ShouldClampAtHundred", func() {
		state := NewVoteState()

		for i := 0; i < 40; i++ {
			next, err := NextVoteState(state, nil, VoteUp)
			require.NoError(suite.T(), err)
			state = next
		}

		assert.Equal(suite.T(), TrustScoreMax, state.TrustScore)
		assert.Equal(suite.T(), 40, state.Votes)
	})

	suite.Run("FlipAtFloor_ShouldStayClamped", func() {
		state := VoteState{Votes: -25, TrustScore: 2}

		next, err := NextVoteState(state, ptr(VoteUp), VoteDown)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), TrustScoreMin, next.TrustScore)
	})
}

// TestVoteScenario walks the documented multi-user sequence
func (suite *VotePolicyTestSuite) TestVoteScenario() {
	state := NewVoteState()

	// User A casts up
	state, err := NextVoteState(state, nil, VoteUp)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), VoteState{Votes: 1, TrustScore: 52}, state)

	// User B casts down
	state, err = NextVoteState(state, nil, VoteDown)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), VoteState{Votes: 0, TrustScore: 50}, state)

	// User A flips to down
	state, err = NextVoteState(state, ptr(VoteUp), VoteDown)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), VoteState{Votes: -2, TrustScore: 46}, state)

	// User A repeats down: rejected, state unchanged
	next, err := NextVoteState(state, ptr(VoteDown), VoteDown)
	assert.ErrorIs(suite.T(), err, ErrDuplicateVote)
	assert.Equal(suite.T(), VoteState{Votes: -2, TrustScore: 46}, next)
}

// TestTrustLabel tests the display policy for low-vote items
func (suite *VotePolicyTestSuite) TestTrustLabel() {
	suite.Run("BelowThreshold_ShouldBeUnreliable", func() {
		label := LabelFor(VoteState{Votes: 4, TrustScore: 58})

		assert.False(suite.T(), label.Reliable)
		assert.Equal(suite.T(), 58, label.Score)
	})

	suite.Run("AtThreshold_ShouldBeReliable", func() {
		label := LabelFor(VoteState{Votes: MinTrustVotes, TrustScore: 60})

		assert.True(suite.T(), label.Reliable)
	})
}

func TestVotePolicyTestSuite(t *testing.T) {
	suite.Run(t, new(VotePolicyTestSuite))
}
