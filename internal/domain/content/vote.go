package content

// Per-vote deltas. A flip both cancels the old vote and applies the new
// one, so the delta doubles.
const (
	voteUnit  = 1
	trustUnit = 2
)

// NextVoteState computes the vote count and trust score that result from
// a user casting vote on an item currently in state cur, where prior is
// the user's existing effective vote (nil if they have not voted).
//
// Policy:
//   - no prior vote: one unit of delta, in the direction of the vote;
//   - prior vote of the same type: ErrDuplicateVote, state unchanged;
//   - prior vote of the opposite type: double delta in the new direction.
//
// The trust score is clamped to [TrustScoreMin, TrustScoreMax] after the
// delta is applied; the vote count is unbounded.
func NextVoteState(cur VoteState, prior *VoteType, vote VoteType) (VoteState, error) {
	if !vote.Valid() {
		return cur, ErrInvalidVoteType
	}

	if prior != nil && *prior == vote {
		return cur, ErrDuplicateVote
	}

	voteDelta := voteUnit
	trustDelta := trustUnit
	if vote == VoteDown {
		voteDelta = -voteDelta
		trustDelta = -trustDelta
	}

	if prior != nil {
		voteDelta *= 2
		trustDelta *= 2
	}

	return VoteState{
		Votes:      cur.Votes + voteDelta,
		TrustScore: clampTrust(cur.TrustScore + trustDelta),
	}, nil
}

func clampTrust(score int) int {
	if score < TrustScoreMin {
		return TrustScoreMin
	}
	if score > TrustScoreMax {
		return TrustScoreMax
	}
	return score
}
