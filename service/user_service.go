package service

import (
	"database/sql"
	"errors"
	"strings"

	"societyhub/models"
	"societyhub/repository"
	"societyhub/utils"
)

// UserRegistry is the user persistence surface used by UserService.
type UserRegistry interface {
	CreateUser(user *models.User) error
	GetUserByID(userID int64) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersBySociety(societyID int64) ([]models.User, error)
	GetUsersByRole(role models.Role) ([]models.User, error)
}

// UserService handles registration, login and user lookups
type UserService struct {
	users          UserRegistry
	societies      SocietyStore
	jwtSecret      []byte
	tokenExpiryHrs int
}

// NewUserService creates a new user service
func NewUserService(users UserRegistry, societies SocietyStore, jwtSecret string, tokenExpiryHrs int) *UserService {
	return &UserService{
		users:          users,
		societies:      societies,
		jwtSecret:      []byte(jwtSecret),
		tokenExpiryHrs: tokenExpiryHrs,
	}
}

// RegisterUser creates a new user inside an existing society. Emails
// are unique; passwords are stored as bcrypt hashes; roles are
// normalized to uppercase.
func (s *UserService) RegisterUser(req *models.RegisterUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, &ValidationError{Field: "fullName"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, &ValidationError{Field: "email"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password"}
	}
	if strings.TrimSpace(req.Role) == "" {
		return nil, &ValidationError{Field: "role"}
	}

	existing, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	exists, err := s.societies.SocietyExists(req.SocietyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrSocietyNotFound
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		SocietyID:       req.SocietyID,
		FullName:        req.FullName,
		Email:           req.Email,
		Role:            models.Role(strings.ToUpper(strings.TrimSpace(req.Role))),
		PasswordHash:    hash,
		ReputationScore: models.DefaultReputationScore,
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = sql.NullString{String: req.PhoneNumber, Valid: true}
	}
	if req.FlatNo != "" {
		user.FlatNo = sql.NullString{String: req.FlatNo, Valid: true}
	}

	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed JWT.
func (s *UserService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.UserID, user.Email, string(user.Role), s.jwtSecret, s.tokenExpiryHrs)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:    token,
		FullName: user.FullName,
		Role:     user.Role,
	}, nil
}

// GetUsersBySociety lists all members of a society
func (s *UserService) GetUsersBySociety(societyID int64) ([]models.User, error) {
	return s.users.GetUsersBySociety(societyID)
}

// GetUsersByRole lists all users holding a role (uppercased)
func (s *UserService) GetUsersByRole(role string) ([]models.User, error) {
	return s.users.GetUsersByRole(models.Role(strings.ToUpper(strings.TrimSpace(role))))
}

// VerifyUserExists reports whether the user ID resolves to a user
func (s *UserService) VerifyUserExists(userID int64) (bool, error) {
	_, err := s.users.GetUserByID(userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
