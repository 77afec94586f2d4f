// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tastevine/v1/internal/domain/content"
	"github.com/tastevine/v1/internal/domain/recipe"
	"github.com/tastevine/v1/internal/domain/remedy"
	"github.com/tastevine/v1/internal/domain/user"
)

// VoteStore is the persistence contract for the vote ledger.
//
// ApplyVote must perform the whole read-modify-write (load the item's
// current vote state, load any prior vote record for the user, compute
// the next state via content.NextVoteState, persist both) as a single
// atomic unit relative to concurrent calls on the same content item.
// Implementations may lock the content row or use compare-and-swap;
// either way, lost updates are unacceptable.
type VoteStore interface {
	ApplyVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID, vote content.VoteType) (content.VoteState, error)

	// FindVote returns the user's current effective vote, or nil if
	// the user has not voted on the item.
	FindVote(ctx context.Context, kind content.Kind, contentID, userID uuid.UUID) (*content.VoteType, error)

	// VoteState returns the item's current vote count and trust score.
	VoteState(ctx context.Context, kind content.Kind, contentID uuid.UUID) (content.VoteState, error)
}

// RecipeRepository defines the interface for community recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindNewest(ctx context.Context, offset, limit int) ([]*recipe.Recipe, int, error)
}

// SavedRecipeRepository stores AI-generated recipes a user chose to keep
type SavedRecipeRepository interface {
	Save(ctx context.Context, userID uuid.UUID, generated *recipe.Generated) (uuid.UUID, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]SavedRecipe, error)
}

// SavedRecipe is a persisted generated recipe with its storage identity
type SavedRecipe struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Recipe    recipe.Generated
	CreatedAt time.Time
}

// RemedyRepository defines the interface for shared remedy persistence
type RemedyRepository interface {
	Create(ctx context.Context, remedy *remedy.Remedy) error
	FindByID(ctx context.Context, id uuid.UUID) (*remedy.Remedy, error)
	FindNewest(ctx context.Context, offset, limit int) ([]*remedy.Remedy, int, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
