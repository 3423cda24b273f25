package models

import (
	"database/sql"
	"strings"
	"time"
)

// ComplaintStatus represents the lifecycle state of a complaint.
// Administrators may write values outside this vocabulary; these
// constants cover the states the engine itself produces.
type ComplaintStatus string

const (
	StatusPendingVerification ComplaintStatus = "PENDING_VERIFICATION"
	StatusOpen                ComplaintStatus = "OPEN"
	StatusResolved            ComplaintStatus = "RESOLVED"
	// StatusRejected is only written under the reputation verdict policy.
	StatusRejected ComplaintStatus = "REJECTED"
)

// Severity represents complaint severity levels
type Severity string

const (
	SeverityLow       Severity = "LOW"
	SeverityMedium    Severity = "MEDIUM"
	SeverityHigh      Severity = "HIGH"
	SeverityEmergency Severity = "EMERGENCY"
)

// Role represents a user's role within a society
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleResident Role = "RESIDENT"
	RoleVendor   Role = "VENDOR"
	RoleGuard    Role = "GUARD"
)

// DefaultReputationScore is the baseline every new user starts at.
const DefaultReputationScore = 100

// NormalizeSeverity uppercases the input and falls back to LOW when empty.
func NormalizeSeverity(s string) Severity {
	if strings.TrimSpace(s) == "" {
		return SeverityLow
	}
	return Severity(strings.ToUpper(strings.TrimSpace(s)))
}

// Society represents a tenant. Complaints and users are scoped to one society.
type Society struct {
	SocietyID          int64          `db:"society_id" json:"society_id"`
	Name               string         `db:"name" json:"name"`
	Address            string         `db:"address" json:"address"`
	RegistrationNumber sql.NullString `db:"registration_number" json:"registration_number"`
	TotalWings         sql.NullInt64  `db:"total_wings" json:"total_wings"`
	TotalFloors        sql.NullInt64  `db:"total_floors" json:"total_floors"`
	TotalFlats         sql.NullInt64  `db:"total_flats" json:"total_flats"`
	Amenities          []string       `db:"amenities" json:"amenities"`
	SubscriptionStatus string         `db:"subscription_status" json:"subscription_status"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
}

// User represents a society member (resident, admin, vendor or guard)
type User struct {
	UserID          int64          `db:"user_id" json:"user_id"`
	SocietyID       int64          `db:"society_id" json:"society_id"`
	FullName        string         `db:"full_name" json:"full_name"`
	Email           string         `db:"email" json:"email"`
	PhoneNumber     sql.NullString `db:"phone_number" json:"phone_number"`
	Role            Role           `db:"role" json:"role"`
	FlatNo          sql.NullString `db:"flat_no" json:"flat_no"`
	PasswordHash    string         `db:"password_hash" json:"-"`
	ReputationScore int            `db:"reputation_score" json:"reputation_score"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// Complaint represents a resident-filed issue report.
// Society, author and vendor are explicit foreign-key identifiers,
// resolved through the user/society repositories at the time of use.
type Complaint struct {
	ComplaintID      int64           `db:"complaint_id" json:"complaint_id"`
	SocietyID        int64           `db:"society_id" json:"society_id"`
	UserID           int64           `db:"user_id" json:"user_id"`
	Title            string          `db:"title" json:"title"`
	Description      string          `db:"description" json:"description"`
	Category         string          `db:"category" json:"category"`
	Status           ComplaintStatus `db:"status" json:"status"`
	Severity         Severity        `db:"severity" json:"severity"`
	ImageURL         sql.NullString  `db:"image_url" json:"image_url"`
	Upvotes          int             `db:"upvotes" json:"upvotes"`
	AssignedVendorID sql.NullInt64   `db:"assigned_vendor_id" json:"assigned_vendor_id"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        sql.NullTime    `db:"updated_at" json:"updated_at"`
}

// ComplaintVote is one immutable Vote Ledger entry. The
// (complaint_id, user_id) pair is unique at the storage layer.
type ComplaintVote struct {
	VoteID      int64     `db:"vote_id" json:"vote_id"`
	ComplaintID int64     `db:"complaint_id" json:"complaint_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
