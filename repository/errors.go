package repository

import "errors"

// Business errors surfaced by the storage layer. Callers match them
// with errors.Is and translate to client-facing responses.
var (
	ErrSocietyNotFound   = errors.New("society not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrComplaintNotFound = errors.New("complaint not found")

	// ErrDuplicateVote is returned when the (complaint_id, user_id)
	// unique key on complaint_votes rejects an insert.
	ErrDuplicateVote = errors.New("user has already voted on this complaint")
)
