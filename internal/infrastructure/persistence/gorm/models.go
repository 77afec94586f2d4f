// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time

	// Relationships
	Recipes []RecipeModel `gorm:"foreignKey:AuthorID"`
}

// RecipeModel represents the GORM model for community recipes
type RecipeModel struct {
	ID           uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Title        string      `gorm:"type:varchar(255);not null;index"`
	Description  string      `gorm:"type:text"`
	Ingredients  StringSlice `gorm:"type:json;not null"`
	Instructions StringSlice `gorm:"type:json;not null"`
	AuthorID     uuid.UUID   `gorm:"type:char(36);not null;index"`
	AuthorName   string      `gorm:"type:varchar(255)"`
	ImageURL     string      `gorm:"type:text"`
	DietaryTags  StringSlice `gorm:"type:json"`
	Difficulty   string      `gorm:"type:varchar(20)"`
	PrepTime     string      `gorm:"type:varchar(100)"`

	// Voting state; mutated only through the vote ledger
	Votes      int `gorm:"default:0"`
	TrustScore int `gorm:"default:50"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Author UserModel `gorm:"foreignKey:AuthorID"`
}

// RemedyModel represents the GORM model for shared remedies
type RemedyModel struct {
	ID             uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Title          string      `gorm:"type:varchar(255);not null;index"`
	Description    string      `gorm:"type:text"`
	Ingredients    StringSlice `gorm:"type:json;not null"`
	Instructions   StringSlice `gorm:"type:json;not null"`
	AuthorID       uuid.UUID   `gorm:"type:char(36);not null;index"`
	PrepTime       string      `gorm:"type:varchar(100)"`
	CookTime       string      `gorm:"type:varchar(100)"`
	Servings       string      `gorm:"type:varchar(100)"`
	Region         string      `gorm:"type:varchar(255)"`
	Tradition      string      `gorm:"type:text"`
	HealthBenefits StringSlice `gorm:"type:json"`
	Precautions    StringSlice `gorm:"type:json"`
	Illness        string      `gorm:"type:varchar(255);index"`

	Votes      int `gorm:"default:0"`
	TrustScore int `gorm:"default:50"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// SavedRecipeModel stores AI-generated recipes kept by a user. The full
// generated document is stored as-is.
type SavedRecipeModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Document  JSONField `gorm:"type:json;not null"`
	CreatedAt time.Time `gorm:"index"`

	// Relationships
	User UserModel `gorm:"foreignKey:UserID"`
}

// ContentVoteModel records one user's current vote on one content item.
// The composite key makes a second row for the same pair impossible.
type ContentVoteModel struct {
	ContentKind string    `gorm:"type:varchar(20);primaryKey"`
	ContentID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);primaryKey"`
	VoteType    string    `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// JSONField custom type for handling JSON fields
type JSONField map[string]interface{}

// Scan implements the sql.Scanner interface
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = JSONField{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

// Value implements the driver.Valuer interface
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return "{}", nil
	}
	return json.Marshal(j)
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RemedyModel
func (r *RemedyModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for SavedRecipeModel
func (s *SavedRecipeModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName methods for explicit table naming
func (UserModel) TableName() string        { return "users" }
func (RecipeModel) TableName() string      { return "recipes" }
func (RemedyModel) TableName() string      { return "remedies" }
func (SavedRecipeModel) TableName() string { return "saved_recipes" }
func (ContentVoteModel) TableName() string { return "content_votes" }

// AllModels returns every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&RecipeModel{},
		&RemedyModel{},
		&SavedRecipeModel{},
		&ContentVoteModel{},
	}
}
