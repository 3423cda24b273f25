package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"societyhub/models"
	"societyhub/repository"
	"societyhub/service"

	"github.com/gorilla/mux"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// RegisterUser handles POST /api/users/register
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	user, err := h.service.RegisterUser(&req)
	if err != nil {
		respondUserError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse request body")
		return
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}
		respondUserError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// GetUsersBySociety handles GET /api/users/society/{societyId}
func (h *UserHandler) GetUsersBySociety(w http.ResponseWriter, r *http.Request) {
	societyID, err := pathID(r, "societyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Invalid society ID")
		return
	}

	users, err := h.service.GetUsersBySociety(societyID)
	if err != nil {
		respondUserError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	respondWithJSON(w, http.StatusOK, users)
}

// GetUsersByRole handles GET /api/users/role/{role}
func (h *UserHandler) GetUsersByRole(w http.ResponseWriter, r *http.Request) {
	role := mux.Vars(r)["role"]

	users, err := h.service.GetUsersByRole(role)
	if err != nil {
		respondUserError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	respondWithJSON(w, http.StatusOK, users)
}

func respondUserError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, "Validation error", validationErr.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, repository.ErrSocietyNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		respondWithError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
