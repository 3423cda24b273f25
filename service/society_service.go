package service

import (
	"database/sql"
	"errors"
	"strings"

	"societyhub/models"
	"societyhub/repository"
)

// SocietyRegistry is the society persistence surface used by SocietyService.
type SocietyRegistry interface {
	CreateSociety(society *models.Society) error
	GetSocietyByID(societyID int64) (*models.Society, error)
	GetSocietyByName(name string) (*models.Society, error)
	UpdateSociety(society *models.Society) error
}

// SocietyService handles tenant registration and maintenance
type SocietyService struct {
	societies SocietyRegistry
}

// NewSocietyService creates a new society service
func NewSocietyService(societies SocietyRegistry) *SocietyService {
	return &SocietyService{societies: societies}
}

// RegisterSociety creates a new society. Names are unique across tenants.
func (s *SocietyService) RegisterSociety(req *models.RegisterSocietyRequest) (*models.Society, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, &ValidationError{Field: "address"}
	}

	existing, err := s.societies.GetSocietyByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSocietyNameTaken
	}

	society := &models.Society{
		Name:               req.Name,
		Address:            req.Address,
		SubscriptionStatus: "ACTIVE",
	}
	if err := s.societies.CreateSociety(society); err != nil {
		return nil, err
	}
	return society, nil
}

// GetSocietyByID fetches a society record
func (s *SocietyService) GetSocietyByID(societyID int64) (*models.Society, error) {
	return s.societies.GetSocietyByID(societyID)
}

// UpdateSociety applies a partial update: only the fields present in
// the request are overwritten.
func (s *SocietyService) UpdateSociety(societyID int64, req *models.UpdateSocietyRequest) (*models.Society, error) {
	society, err := s.societies.GetSocietyByID(societyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		society.Name = *req.Name
	}
	if req.Address != nil {
		society.Address = *req.Address
	}
	if req.RegistrationNumber != nil {
		society.RegistrationNumber = sql.NullString{String: *req.RegistrationNumber, Valid: true}
	}
	if req.TotalWings != nil {
		society.TotalWings = sql.NullInt64{Int64: *req.TotalWings, Valid: true}
	}
	if req.TotalFloors != nil {
		society.TotalFloors = sql.NullInt64{Int64: *req.TotalFloors, Valid: true}
	}
	if req.TotalFlats != nil {
		society.TotalFlats = sql.NullInt64{Int64: *req.TotalFlats, Valid: true}
	}
	if req.Amenities != nil {
		society.Amenities = req.Amenities
	}

	if err := s.societies.UpdateSociety(society); err != nil {
		return nil, err
	}
	return society, nil
}

// SocietyExists reports whether the society is registered
func (s *SocietyService) SocietyExists(societyID int64) (bool, error) {
	_, err := s.societies.GetSocietyByID(societyID)
	if errors.Is(err, repository.ErrSocietyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
