package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"societyhub/models"

	"github.com/go-sql-driver/mysql"
)

// ComplaintRepository handles database operations for complaints and
// owns every write to complaints.status, complaints.upvotes and
// complaints.assigned_vendor_id.
type ComplaintRepository struct {
	db *sql.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *sql.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

const complaintColumns = `
	complaint_id, society_id, user_id, title, description, category,
	status, severity, image_url, upvotes, assigned_vendor_id,
	created_at, updated_at
`

// CreateComplaint inserts a new complaint and fills in its generated ID
func (r *ComplaintRepository) CreateComplaint(complaint *models.Complaint) error {
	query := `
		INSERT INTO complaints (
			society_id, user_id, title, description, category,
			status, severity, image_url, upvotes, assigned_vendor_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		complaint.SocietyID,
		complaint.UserID,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Status,
		complaint.Severity,
		complaint.ImageURL,
		complaint.Upvotes,
		complaint.AssignedVendorID,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	complaintID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get complaint ID: %w", err)
	}

	complaint.ComplaintID = complaintID
	return nil
}

// GetComplaintByID retrieves a complaint by its ID
func (r *ComplaintRepository) GetComplaintByID(complaintID int64) (*models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE complaint_id = ?`

	var complaint models.Complaint
	err := r.db.QueryRow(query, complaintID).Scan(
		&complaint.ComplaintID,
		&complaint.SocietyID,
		&complaint.UserID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Category,
		&complaint.Status,
		&complaint.Severity,
		&complaint.ImageURL,
		&complaint.Upvotes,
		&complaint.AssignedVendorID,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return &complaint, nil
}

// GetComplaintsBySociety retrieves all complaints filed in a society,
// newest first.
func (r *ComplaintRepository) GetComplaintsBySociety(societyID int64) ([]models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE society_id = ? ORDER BY created_at DESC`

	rows, err := r.db.Query(query, societyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}
	defer rows.Close()

	var complaints []models.Complaint
	for rows.Next() {
		var complaint models.Complaint
		err := rows.Scan(
			&complaint.ComplaintID,
			&complaint.SocietyID,
			&complaint.UserID,
			&complaint.Title,
			&complaint.Description,
			&complaint.Category,
			&complaint.Status,
			&complaint.Severity,
			&complaint.ImageURL,
			&complaint.Upvotes,
			&complaint.AssignedVendorID,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, complaint)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating complaints: %w", err)
	}
	return complaints, nil
}

// ApplyUpvote records one vote and its side effects atomically:
// the ledger insert, the counter increment and the conditional
// escalation run in a single transaction, so the increment only
// happens for the insert that won the unique key and concurrent
// votes from distinct users never lose updates.
//
// A duplicate (complaint_id, user_id) pair returns ErrDuplicateVote
// without touching the counter. Escalation is a conditional UPDATE
// gated on the current status still being PENDING_VERIFICATION, which
// makes it one-way and one-time.
func (r *ComplaintRepository) ApplyUpvote(complaintID, voterID int64, escalationThreshold int) (*models.Complaint, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO complaint_votes (complaint_id, user_id) VALUES (?, ?)`,
		complaintID, voterID,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicateVote
		}
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	// Atomic read-modify-write on the counter; no application-side
	// read of the previous value.
	_, err = tx.Exec(
		`UPDATE complaints SET upvotes = upvotes + 1, updated_at = NOW() WHERE complaint_id = ?`,
		complaintID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to increment upvotes: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE complaints
		 SET status = ?, updated_at = NOW()
		 WHERE complaint_id = ? AND status = ? AND upvotes >= ?`,
		models.StatusOpen, complaintID, models.StatusPendingVerification, escalationThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to apply escalation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote transaction: %w", err)
	}

	return r.GetComplaintByID(complaintID)
}

// UpdateStatus overwrites the complaint status unconditionally.
// Workflow legality is the caller's responsibility.
func (r *ComplaintRepository) UpdateStatus(complaintID int64, status models.ComplaintStatus) (*models.Complaint, error) {
	result, err := r.db.Exec(
		`UPDATE complaints SET status = ?, updated_at = NOW() WHERE complaint_id = ?`,
		status, complaintID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// The UPDATE also matches zero rows when the status is already
		// the requested value, so double-check existence.
		if _, err := r.GetComplaintByID(complaintID); err != nil {
			return nil, err
		}
	}
	return r.GetComplaintByID(complaintID)
}

// AssignVendor sets the complaint's assigned vendor
func (r *ComplaintRepository) AssignVendor(complaintID, vendorID int64) (*models.Complaint, error) {
	_, err := r.db.Exec(
		`UPDATE complaints SET assigned_vendor_id = ?, updated_at = NOW() WHERE complaint_id = ?`,
		vendorID, complaintID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to assign vendor: %w", err)
	}
	return r.GetComplaintByID(complaintID)
}

// RecountUpvotes rewrites every drifted upvote counter from the vote
// ledger and returns how many complaints were repaired. Used by the
// reconciliation worker; under normal operation this touches nothing.
func (r *ComplaintRepository) RecountUpvotes() (int64, error) {
	query := `
		UPDATE complaints c
		SET c.upvotes = (
			SELECT COUNT(*) FROM complaint_votes v WHERE v.complaint_id = c.complaint_id
		)
		WHERE c.upvotes <> (
			SELECT COUNT(*) FROM complaint_votes v WHERE v.complaint_id = c.complaint_id
		)
	`
	result, err := r.db.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("failed to recount upvotes: %w", err)
	}
	repaired, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return repaired, nil
}

// isDuplicateEntry reports whether err is a MySQL duplicate-key
// violation (error 1062).
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
