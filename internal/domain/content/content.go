// Package content contains the domain logic shared by votable community
// content. Recipes and remedies both carry a net vote count and a 0-100
// trust score that only this package knows how to move.
package content

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two votable content variants.
type Kind string

const (
	KindRecipe Kind = "recipe"
	KindRemedy Kind = "remedy"
)

// Trust score bounds and the neutral prior applied on submission.
const (
	TrustScoreMin     = 0
	TrustScoreMax     = 100
	TrustScoreInitial = 50
)

// MinTrustVotes is the vote count below which a trust score is presented
// as "not enough votes" instead of a percentage.
const MinTrustVotes = 5

// VoteType is a user's current effective vote on a content item.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Valid reports whether the vote type is one of the two known values.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// VoteState is the mutable voting state of a content item.
type VoteState struct {
	Votes      int
	TrustScore int
}

// NewVoteState returns the state assigned to freshly submitted content.
func NewVoteState() VoteState {
	return VoteState{Votes: 0, TrustScore: TrustScoreInitial}
}

// VoteRecord is the single effective vote of one user on one content item.
// At most one record may exist per (content, user) pair.
type VoteRecord struct {
	ContentID uuid.UUID
	UserID    uuid.UUID
	VoteType  VoteType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrustLabel is the read-side presentation of a trust score.
type TrustLabel struct {
	Score    int  `json:"score"`
	Reliable bool `json:"reliable"`
}

// LabelFor applies the display policy: scores backed by fewer than
// MinTrustVotes votes are flagged unreliable so the UI can show a
// neutral "not enough votes" label.
func LabelFor(state VoteState) TrustLabel {
	return TrustLabel{
		Score:    state.TrustScore,
		Reliable: state.Votes >= MinTrustVotes,
	}
}
