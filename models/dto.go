package models

// CreateComplaintRequest is the body of POST /api/complaints
type CreateComplaintRequest struct {
	SocietyID   int64  `json:"societyId"`
	UserID      int64  `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Severity    string `json:"severity,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// RegisterSocietyRequest is the body of POST /api/societies/register
type RegisterSocietyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// UpdateSocietyRequest is the body of PUT /api/societies/{id}.
// Nil fields are left untouched.
type UpdateSocietyRequest struct {
	Name               *string  `json:"name,omitempty"`
	Address            *string  `json:"address,omitempty"`
	RegistrationNumber *string  `json:"registrationNumber,omitempty"`
	TotalWings         *int64   `json:"totalWings,omitempty"`
	TotalFloors        *int64   `json:"totalFloors,omitempty"`
	TotalFlats         *int64   `json:"totalFlats,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
}

// RegisterUserRequest is the body of POST /api/users/register
type RegisterUserRequest struct {
	SocietyID   int64  `json:"societyId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	FlatNo      string `json:"flatNo,omitempty"`
}

// LoginRequest is the body of POST /api/users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and display data
type LoginResponse struct {
	Token    string `json:"token"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// VoteSummaryResponse is returned by GET /api/complaints/{complaintId}/votes/{userId}
type VoteSummaryResponse struct {
	ComplaintID int64 `json:"complaint_id"`
	Count       int   `json:"count"`
	HasVoted    bool  `json:"has_voted"`
}

// UploadResponse is returned by POST /api/storage/upload
type UploadResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the JSON shape of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
