package repository

import (
	"database/sql"
	"fmt"
)

// VoteRepository exposes read access to the Vote Ledger. Writes go
// through ComplaintRepository.ApplyUpvote so the ledger insert and
// the counter update share one transaction.
type VoteRepository struct {
	db *sql.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// HasVoted reports whether the voter already holds a ledger entry for
// the complaint. Callers must not rely on this check for correctness;
// the unique key on complaint_votes is the authoritative guard.
func (r *VoteRepository) HasVoted(complaintID, userID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM complaint_votes WHERE complaint_id = ? AND user_id = ?`,
		complaintID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return count > 0, nil
}

// CountVotes returns the number of distinct voters recorded for a complaint
func (r *VoteRepository) CountVotes(complaintID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM complaint_votes WHERE complaint_id = ?`,
		complaintID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
