package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"societyhub/models"
	"societyhub/repository"
	"societyhub/service"

	"github.com/gorilla/mux"
)

// VoteReader exposes read access to the vote ledger.
type VoteReader interface {
	HasVoted(complaintID, userID int64) (bool, error)
	CountVotes(complaintID int64) (int, error)
}

// ComplaintHandler handles HTTP requests for complaints
type ComplaintHandler struct {
	service *service.ComplaintService
	votes   VoteReader
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(svc *service.ComplaintService, votes VoteReader) *ComplaintHandler {
	return &ComplaintHandler{service: svc, votes: votes}
}

// CreateComplaint handles POST /api/complaints
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	complaint, err := h.service.CreateComplaint(r.Context(), &req)
	if err != nil {
		respondComplaintError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, complaint)
}

// GetComplaintsBySociety handles GET /api/complaints/society/{societyId}
func (h *ComplaintHandler) GetComplaintsBySociety(w http.ResponseWriter, r *http.Request) {
	societyID, err := pathID(r, "societyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid society ID")
		return
	}

	complaints, err := h.service.ListBySociety(societyID)
	if err != nil {
		respondComplaintError(w, err)
		return
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	respondWithJSON(w, http.StatusOK, complaints)
}

// UpvoteComplaint handles POST /api/complaints/{complaintId}/upvote/{userId}
func (h *ComplaintHandler) UpvoteComplaint(w http.ResponseWriter, r *http.Request) {
	complaintID, err := pathID(r, "complaintId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid user ID")
		return
	}

	complaint, err := h.service.Upvote(complaintID, userID)
	if err != nil {
		respondComplaintError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, complaint)
}

// UpdateStatus handles PUT /api/complaints/{complaintId}/status?status=
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	complaintID, err := pathID(r, "complaintId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}

	status := r.URL.Query().Get("status")
	complaint, err := h.service.UpdateStatus(complaintID, status)
	if err != nil {
		respondComplaintError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, complaint)
}

// AssignVendor handles PUT /api/complaints/{id}/assign/{vendorId}
func (h *ComplaintHandler) AssignVendor(w http.ResponseWriter, r *http.Request) {
	complaintID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}
	vendorID, err := pathID(r, "vendorId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid vendor ID")
		return
	}

	complaint, err := h.service.AssignVendor(complaintID, vendorID)
	if err != nil {
		respondComplaintError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, complaint)
}

// GetVoteSummary handles GET /api/complaints/{complaintId}/votes/{userId}.
// Reads the ledger directly: the count here is the authoritative number
// of distinct voters, independent of the cached upvotes counter.
func (h *ComplaintHandler) GetVoteSummary(w http.ResponseWriter, r *http.Request) {
	complaintID, err := pathID(r, "complaintId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid complaint ID")
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid user ID")
		return
	}

	count, err := h.votes.CountVotes(complaintID)
	if err != nil {
		respondComplaintError(w, err)
		return
	}
	hasVoted, err := h.votes.HasVoted(complaintID, userID)
	if err != nil {
		respondComplaintError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.VoteSummaryResponse{
		ComplaintID: complaintID,
		Count:       count,
		HasVoted:    hasVoted,
	})
}

// respondComplaintError maps lifecycle-engine failures onto HTTP.
// Business failures are all client errors with a readable message;
// anything else is a 500.
func respondComplaintError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var rejectedErr *service.RejectedByValidationError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, "Validation error", validationErr.Error())
	case errors.As(err, &rejectedErr):
		respondWithError(w, http.StatusBadRequest, "Rejected by validation", rejectedErr.Error())
	case errors.Is(err, repository.ErrDuplicateVote),
		errors.Is(err, repository.ErrSocietyNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrComplaintNotFound),
		errors.Is(err, service.ErrNotAVendor):
		respondWithError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// Helper functions shared by the handler package

// pathID parses an int64 path variable
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	response := models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	}
	respondWithJSON(w, statusCode, response)
}
