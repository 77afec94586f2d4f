package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastevine/v1/internal/domain/content"
	"github.com/tastevine/v1/internal/ports/outbound"
)

// VoteStore implements the vote ledger over GORM.
//
// ApplyVote runs the whole read-modify-write in one transaction. The
// content row is locked FOR UPDATE first, so two concurrent voters on
// the same item serialize at the database and neither update is lost.
type VoteStore struct {
	db *gorm.DB
}

// NewVoteStore creates a new vote store
func NewVoteStore(db *gorm.DB) outbound.VoteStore {
	return &VoteStore{db: db}
}

// ApplyVote records one vote and returns the item's new vote state.
func (s *VoteStore) ApplyVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID, vote content.VoteType) (content.VoteState, error) {
	var next content.VoteState

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := lockVoteState(tx, kind, contentID)
		if err != nil {
			return err
		}

		prior, err := findVote(tx, kind, contentID, userID)
		if err != nil {
			return err
		}

		next, err = content.NextVoteState(cur, prior, vote)
		if err != nil {
			return err
		}

		if err := updateVoteState(tx, kind, contentID, next); err != nil {
			return err
		}

		record := ContentVoteModel{
			ContentKind: string(kind),
			ContentID:   contentID,
			UserID:      userID,
			VoteType:    string(vote),
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "content_kind"},
				{Name: "content_id"},
				{Name: "user_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"vote_type", "updated_at"}),
		}).Create(&record).Error
	})
	if err != nil {
		return content.VoteState{}, err
	}

	return next, nil
}

// FindVote returns the user's current effective vote, or nil.
func (s *VoteStore) FindVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID) (*content.VoteType, error) {
	return findVote(s.db.WithContext(ctx), kind, contentID, userID)
}

// VoteState returns the item's current vote count and trust score.
func (s *VoteStore) VoteState(ctx context.Context, kind content.Kind, contentID uuid.UUID) (content.VoteState, error) {
	return readVoteState(s.db.WithContext(ctx), kind, contentID, false)
}

func lockVoteState(tx *gorm.DB, kind content.Kind, contentID uuid.UUID) (content.VoteState, error) {
	return readVoteState(tx, kind, contentID, true)
}

func readVoteState(tx *gorm.DB, kind content.Kind, contentID uuid.UUID, forUpdate bool) (content.VoteState, error) {
	var row struct {
		Votes      int
		TrustScore int
	}

	query := tx.Table(voteTable(kind)).
		Select("votes", "trust_score").
		Where("id = ?", contentID)
	// SQLite serializes writers on its own and rejects FOR UPDATE.
	if forUpdate && tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if err := query.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return content.VoteState{}, content.ErrNotFound
		}
		return content.VoteState{}, err
	}

	return content.VoteState{Votes: row.Votes, TrustScore: row.TrustScore}, nil
}

func updateVoteState(tx *gorm.DB, kind content.Kind, contentID uuid.UUID, state content.VoteState) error {
	return tx.Table(voteTable(kind)).
		Where("id = ?", contentID).
		Updates(map[string]interface{}{
			"votes":       state.Votes,
			"trust_score": state.TrustScore,
		}).Error
}

func findVote(tx *gorm.DB, kind content.Kind, contentID, userID uuid.UUID) (*content.VoteType, error) {
	var record ContentVoteModel
	err := tx.
		Where("content_kind = ? AND content_id = ? AND user_id = ?", string(kind), contentID, userID).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	vote := content.VoteType(record.VoteType)
	return &vote, nil
}

func voteTable(kind content.Kind) string {
	switch kind {
	case content.KindRemedy:
		return RemedyModel{}.TableName()
	default:
		return RecipeModel{}.TableName()
	}
}
