package service

import (
	"context"
	"log"
	"strings"

	"societyhub/models"
	"societyhub/repository"
)

// ComplaintStore is the complaint persistence surface the engine writes through.
type ComplaintStore interface {
	CreateComplaint(complaint *models.Complaint) error
	GetComplaintByID(complaintID int64) (*models.Complaint, error)
	GetComplaintsBySociety(societyID int64) ([]models.Complaint, error)
	ApplyUpvote(complaintID, voterID int64, escalationThreshold int) (*models.Complaint, error)
	UpdateStatus(complaintID int64, status models.ComplaintStatus) (*models.Complaint, error)
	AssignVendor(complaintID, vendorID int64) (*models.Complaint, error)
}

// UserStore is the read/reputation surface of user storage the engine needs.
type UserStore interface {
	GetUserByID(userID int64) (*models.User, error)
	AdjustReputation(userID int64, delta int) error
}

// SocietyStore is the tenant-lookup surface the engine needs.
type SocietyStore interface {
	SocietyExists(societyID int64) (bool, error)
}

// ComplaintService is the complaint lifecycle engine. It is the sole
// writer of complaint status, upvote counters, vendor assignment and
// user reputation; society and user identity are read-only inputs.
type ComplaintService struct {
	complaints          ComplaintStore
	users               UserStore
	societies           SocietyStore
	validator           MediaValidator
	policy              VerdictPolicy
	escalationThreshold int
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaints ComplaintStore,
	users UserStore,
	societies SocietyStore,
	validator MediaValidator,
	policy VerdictPolicy,
	escalationThreshold int,
) *ComplaintService {
	return &ComplaintService{
		complaints:          complaints,
		users:               users,
		societies:           societies,
		validator:           validator,
		policy:              policy,
		escalationThreshold: escalationThreshold,
	}
}

// CreateComplaint validates the request, optionally consults the media
// validator, and persists exactly one complaint record.
//
// Media branch: validator downtime must never block submission, so an
// unreachable validator (including timeout) degrades to creating the
// complaint in PENDING_VERIFICATION. A returned verdict goes through
// the configured VerdictPolicy, which may reject the creation outright
// or pick the initial status and a reputation delta.
func (s *ComplaintService) CreateComplaint(ctx context.Context, req *models.CreateComplaintRequest) (*models.Complaint, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, &ValidationError{Field: "description"}
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, &ValidationError{Field: "category"}
	}

	exists, err := s.societies.SocietyExists(req.SocietyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrSocietyNotFound
	}
	if _, err := s.users.GetUserByID(req.UserID); err != nil {
		return nil, err
	}

	category := strings.ToUpper(strings.TrimSpace(req.Category))
	severity := models.NormalizeSeverity(req.Severity)

	status := models.StatusPendingVerification
	reputationDelta := 0

	if req.ImageURL != "" {
		verdict, err := s.validator.Verify(ctx, req.ImageURL, category, req.Description)
		if err != nil {
			// No verdict: proceed unverified rather than blocking
			// submission on validator downtime.
			log.Printf("[complaint] media validator unavailable, proceeding unverified: %v", err)
		} else {
			outcome := s.policy.OnVerdict(verdict)
			if outcome.Reject {
				return nil, &RejectedByValidationError{Reasoning: outcome.RejectReason}
			}
			status = outcome.Status
			reputationDelta = outcome.ReputationDelta
		}
	}

	complaint := &models.Complaint{
		SocietyID:   req.SocietyID,
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Status:      status,
		Severity:    severity,
		Upvotes:     0,
	}
	if req.ImageURL != "" {
		complaint.ImageURL.String = req.ImageURL
		complaint.ImageURL.Valid = true
	}

	if err := s.complaints.CreateComplaint(complaint); err != nil {
		return nil, err
	}

	if reputationDelta != 0 {
		if err := s.users.AdjustReputation(req.UserID, reputationDelta); err != nil {
			// The complaint record is already durable; a failed
			// reputation write is logged, not surfaced.
			log.Printf("[complaint] failed to adjust reputation for user %d by %d: %v", req.UserID, reputationDelta, err)
		}
	}

	log.Printf("[complaint] created complaint %d in society %d with status %s", complaint.ComplaintID, complaint.SocietyID, complaint.Status)
	return complaint, nil
}

// Upvote records one vote from voterID on complaintID. At most one
// vote per (complaint, voter) pair ever succeeds; the ledger insert,
// counter increment and escalation check are atomic in storage.
// Crossing the escalation threshold while still PENDING_VERIFICATION
// promotes the complaint to OPEN exactly once.
func (s *ComplaintService) Upvote(complaintID, voterID int64) (*models.Complaint, error) {
	if _, err := s.complaints.GetComplaintByID(complaintID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(voterID); err != nil {
		return nil, err
	}
	return s.complaints.ApplyUpvote(complaintID, voterID, s.escalationThreshold)
}

// UpdateStatus overwrites the complaint status with the uppercased
// input. Any non-empty value is accepted; administrators are trusted
// to stay within the status vocabulary and to enforce workflow order.
func (s *ComplaintService) UpdateStatus(complaintID int64, newStatus string) (*models.Complaint, error) {
	if strings.TrimSpace(newStatus) == "" {
		return nil, &ValidationError{Field: "status"}
	}
	status := models.ComplaintStatus(strings.ToUpper(strings.TrimSpace(newStatus)))
	return s.complaints.UpdateStatus(complaintID, status)
}

// AssignVendor assigns a vendor to the complaint. The target user
// must exist and hold the VENDOR role.
func (s *ComplaintService) AssignVendor(complaintID, vendorID int64) (*models.Complaint, error) {
	if _, err := s.complaints.GetComplaintByID(complaintID); err != nil {
		return nil, err
	}
	vendor, err := s.users.GetUserByID(vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Role != models.RoleVendor {
		return nil, ErrNotAVendor
	}
	return s.complaints.AssignVendor(complaintID, vendorID)
}

// ListBySociety returns all complaints filed in the given society.
func (s *ComplaintService) ListBySociety(societyID int64) ([]models.Complaint, error) {
	return s.complaints.GetComplaintsBySociety(societyID)
}
