package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrTitleTooShort  = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong   = errors.New("recipe title must not exceed 200 characters")
	ErrNoIngredients  = errors.New("recipe must have at least one ingredient")
	ErrNoInstructions = errors.New("recipe must have at least one instruction")
	ErrNoAuthor       = errors.New("recipe must have an author")
	ErrNotFound       = errors.New("recipe not found")
)
