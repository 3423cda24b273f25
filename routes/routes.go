package routes

import (
	"net/http"

	"societyhub/handler"
	"societyhub/middleware"
	"societyhub/repository"
	"societyhub/service"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	complaintService *service.ComplaintService,
	societyService *service.SocietyService,
	userService *service.UserService,
	storageService *service.StorageService,
	voteRepo *repository.VoteRepository,
	jwtSecret []byte,
	enforceAuth bool,
) *mux.Router {
	router := mux.NewRouter()

	// Initialize handlers
	complaintHandler := handler.NewComplaintHandler(complaintService, voteRepo)
	societyHandler := handler.NewSocietyHandler(societyService)
	userHandler := handler.NewUserHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(userService, jwtSecret)

	// protect wraps admin-facing handlers with JWT auth when enforcement
	// is enabled. During the pilot auth stays off and everything is open.
	protect := func(h http.HandlerFunc) http.Handler {
		if enforceAuth {
			return authMiddleware.RequireAuth(h)
		}
		return h
	}

	api := router.PathPrefix("/api").Subrouter()

	// Complaint routes
	complaints := api.PathPrefix("/complaints").Subrouter()

	// POST /api/complaints - Create a new complaint (media validation runs inline)
	complaints.HandleFunc("", complaintHandler.CreateComplaint).Methods("POST")

	// GET /api/complaints/society/{societyId} - List complaints for a society
	complaints.HandleFunc("/society/{societyId}", complaintHandler.GetComplaintsBySociety).Methods("GET")

	// POST /api/complaints/{complaintId}/upvote/{userId} - Upvote a complaint
	complaints.HandleFunc("/{complaintId}/upvote/{userId}", complaintHandler.UpvoteComplaint).Methods("POST")

	// GET /api/complaints/{complaintId}/votes/{userId} - Vote ledger summary
	complaints.HandleFunc("/{complaintId}/votes/{userId}", complaintHandler.GetVoteSummary).Methods("GET")

	// PUT /api/complaints/{complaintId}/status?status= - Update complaint status (admin)
	complaints.Handle("/{complaintId}/status", protect(complaintHandler.UpdateStatus)).Methods("PUT")

	// PUT /api/complaints/{id}/assign/{vendorId} - Assign a vendor (admin)
	complaints.Handle("/{id}/assign/{vendorId}", protect(complaintHandler.AssignVendor)).Methods("PUT")

	// Society routes
	societies := api.PathPrefix("/societies").Subrouter()
	societies.HandleFunc("/register", societyHandler.RegisterSociety).Methods("POST")
	societies.HandleFunc("/{id}", societyHandler.GetSociety).Methods("GET")
	societies.Handle("/{id}", protect(societyHandler.UpdateSociety)).Methods("PUT")

	// User routes
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", userHandler.RegisterUser).Methods("POST")
	users.HandleFunc("/login", userHandler.Login).Methods("POST")
	users.HandleFunc("/society/{societyId}", userHandler.GetUsersBySociety).Methods("GET")
	users.HandleFunc("/role/{role}", userHandler.GetUsersByRole).Methods("GET")

	// Storage routes (optional; nil when object storage is not configured)
	if storageService != nil {
		storageHandler := handler.NewStorageHandler(storageService)
		api.HandleFunc("/storage/upload", storageHandler.UploadFile).Methods("POST")
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	return router
}
