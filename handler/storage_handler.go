package handler

import (
	"io"
	"net/http"

	"societyhub/models"
	"societyhub/service"
)

// maxUploadBytes caps media uploads at 50 MB.
const maxUploadBytes = 50 << 20

// StorageHandler handles media uploads
type StorageHandler struct {
	service *service.StorageService
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(svc *service.StorageService) *StorageHandler {
	return &StorageHandler{service: svc}
}

// UploadFile handles POST /api/storage/upload (multipart form, field "file").
// Returns {"url": "..."} pointing at the stored object.
func (h *StorageHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation error", "File is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Failed to read file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.service.UploadFile(data, header.Filename, contentType)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Upload failed", err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, models.UploadResponse{URL: url})
}
