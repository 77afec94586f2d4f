package content

import "errors"

// Domain errors for voting operations

var (
	ErrNotFound        = errors.New("content not found")
	ErrDuplicateVote   = errors.New("you have already voted on this content")
	ErrInvalidVoteType = errors.New("vote type must be up or down")
)
