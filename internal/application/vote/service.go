// Package vote implements the community vote and trust-score ledger.
package vote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastevine/v1/internal/domain/content"
	"github.com/tastevine/v1/internal/ports/inbound"
	"github.com/tastevine/v1/internal/ports/outbound"
	apperrors "github.com/tastevine/v1/pkg/errors"
)

// Recorder receives vote ledger events for monitoring. Implementations
// must be safe for concurrent use.
type Recorder interface {
	VoteCast(kind content.Kind, vote content.VoteType)
	VoteRejected(reason string)
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) VoteCast(content.Kind, content.VoteType) {}
func (NopRecorder) VoteRejected(string)                     {}

// Service orchestrates vote casting over a VoteStore.
type Service struct {
	store    outbound.VoteStore
	recorder Recorder
	logger   *zap.Logger
}

// NewService creates the vote service. recorder may be nil.
func NewService(store outbound.VoteStore, recorder Recorder, logger *zap.Logger) *Service {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Service{
		store:    store,
		recorder: recorder,
		logger:   logger,
	}
}

// CastVote applies one vote from userID to the identified content item.
//
// A first vote moves the count by one and the trust score by two; a
// repeat of the same vote is rejected without touching the ledger; a
// reversal applies double weight so the item ends where it would be had
// the user voted the other way from the start.
func (s *Service) CastVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID, vote content.VoteType) (*inbound.VoteResult, error) {
	if userID == uuid.Nil {
		s.recorder.VoteRejected("unauthenticated")
		return nil, apperrors.NewAuthenticationRequiredError()
	}
	if !vote.Valid() {
		return nil, apperrors.NewValidationError("vote type must be up or down")
	}

	state, err := s.store.ApplyVote(ctx, kind, contentID, userID, vote)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrDuplicateVote):
			s.recorder.VoteRejected("duplicate")
			return nil, apperrors.NewDuplicateVoteError(contentID.String())
		case errors.Is(err, content.ErrNotFound):
			return nil, apperrors.NewContentNotFoundError(contentID.String())
		default:
			s.logger.Error("vote apply failed",
				zap.String("kind", string(kind)),
				zap.String("content_id", contentID.String()),
				zap.Error(err))
			return nil, apperrors.Wrap(err, "failed to record vote")
		}
	}

	s.recorder.VoteCast(kind, vote)
	s.logger.Info("vote recorded",
		zap.String("kind", string(kind)),
		zap.String("content_id", contentID.String()),
		zap.String("vote", string(vote)),
		zap.Int("votes", state.Votes),
		zap.Int("trust_score", state.TrustScore))

	return &inbound.VoteResult{
		ContentID:  contentID,
		Votes:      state.Votes,
		TrustScore: state.TrustScore,
		Trust:      content.LabelFor(state),
	}, nil
}

// CheckUserVote reports the caller's current effective vote on the item.
// Unauthenticated callers simply have no vote.
func (s *Service) CheckUserVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID) (*content.VoteType, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	vote, err := s.store.FindVote(ctx, kind, contentID, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to look up vote")
	}
	return vote, nil
}
