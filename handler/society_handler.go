package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"societyhub/models"
	"societyhub/repository"
	"societyhub/service"
)

// SocietyHandler handles HTTP requests for societies
type SocietyHandler struct {
	service *service.SocietyService
}

// NewSocietyHandler creates a new society handler
func NewSocietyHandler(svc *service.SocietyService) *SocietyHandler {
	return &SocietyHandler{service: svc}
}

// RegisterSociety handles POST /api/societies/register
func (h *SocietyHandler) RegisterSociety(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterSocietyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	society, err := h.service.RegisterSociety(&req)
	if err != nil {
		respondSocietyError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, society)
}

// GetSociety handles GET /api/societies/{id}
func (h *SocietyHandler) GetSociety(w http.ResponseWriter, r *http.Request) {
	societyID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid society ID")
		return
	}

	society, err := h.service.GetSocietyByID(societyID)
	if err != nil {
		respondSocietyError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, society)
}

// UpdateSociety handles PUT /api/societies/{id}
func (h *SocietyHandler) UpdateSociety(w http.ResponseWriter, r *http.Request) {
	societyID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid society ID")
		return
	}

	var req models.UpdateSocietyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	society, err := h.service.UpdateSociety(societyID, &req)
	if err != nil {
		respondSocietyError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, society)
}

func respondSocietyError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, "Validation error", validationErr.Error())
	case errors.Is(err, service.ErrSocietyNameTaken),
		errors.Is(err, repository.ErrSocietyNotFound):
		respondWithError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
