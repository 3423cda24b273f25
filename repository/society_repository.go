package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"societyhub/models"
)

// SocietyRepository handles database operations for societies
type SocietyRepository struct {
	db *sql.DB
}

// NewSocietyRepository creates a new society repository
func NewSocietyRepository(db *sql.DB) *SocietyRepository {
	return &SocietyRepository{db: db}
}

// CreateSociety inserts a new society and fills in its generated ID
func (r *SocietyRepository) CreateSociety(society *models.Society) error {
	amenities, err := marshalAmenities(society.Amenities)
	if err != nil {
		return fmt.Errorf("failed to encode amenities: %w", err)
	}

	query := `
		INSERT INTO societies (
			name, address, registration_number, total_wings, total_floors,
			total_flats, amenities, subscription_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		society.Name,
		society.Address,
		society.RegistrationNumber,
		society.TotalWings,
		society.TotalFloors,
		society.TotalFlats,
		amenities,
		society.SubscriptionStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to create society: %w", err)
	}

	societyID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get society ID: %w", err)
	}

	society.SocietyID = societyID
	return nil
}

// GetSocietyByID retrieves a society by its ID
func (r *SocietyRepository) GetSocietyByID(societyID int64) (*models.Society, error) {
	query := `
		SELECT society_id, name, address, registration_number, total_wings,
			total_floors, total_flats, amenities, subscription_status, created_at
		FROM societies
		WHERE society_id = ?
	`
	return r.scanSociety(r.db.QueryRow(query, societyID))
}

// GetSocietyByName retrieves a society by its unique name.
// Returns (nil, nil) when no society carries the name.
func (r *SocietyRepository) GetSocietyByName(name string) (*models.Society, error) {
	query := `
		SELECT society_id, name, address, registration_number, total_wings,
			total_floors, total_flats, amenities, subscription_status, created_at
		FROM societies
		WHERE name = ?
	`
	society, err := r.scanSociety(r.db.QueryRow(query, name))
	if err == ErrSocietyNotFound {
		return nil, nil
	}
	return society, err
}

// SocietyExists reports whether a society with the given ID exists
func (r *SocietyRepository) SocietyExists(societyID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM societies WHERE society_id = ?`, societyID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check society existence: %w", err)
	}
	return count > 0, nil
}

// UpdateSociety overwrites the mutable fields of a society record
func (r *SocietyRepository) UpdateSociety(society *models.Society) error {
	amenities, err := marshalAmenities(society.Amenities)
	if err != nil {
		return fmt.Errorf("failed to encode amenities: %w", err)
	}

	query := `
		UPDATE societies
		SET name = ?,
			address = ?,
			registration_number = ?,
			total_wings = ?,
			total_floors = ?,
			total_flats = ?,
			amenities = ?
		WHERE society_id = ?
	`
	_, err = r.db.Exec(
		query,
		society.Name,
		society.Address,
		society.RegistrationNumber,
		society.TotalWings,
		society.TotalFloors,
		society.TotalFlats,
		amenities,
		society.SocietyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update society: %w", err)
	}
	return nil
}

func (r *SocietyRepository) scanSociety(row *sql.Row) (*models.Society, error) {
	var society models.Society
	var amenities sql.NullString
	err := row.Scan(
		&society.SocietyID,
		&society.Name,
		&society.Address,
		&society.RegistrationNumber,
		&society.TotalWings,
		&society.TotalFloors,
		&society.TotalFlats,
		&amenities,
		&society.SubscriptionStatus,
		&society.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSocietyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get society: %w", err)
	}

	if amenities.Valid && amenities.String != "" {
		if err := json.Unmarshal([]byte(amenities.String), &society.Amenities); err != nil {
			return nil, fmt.Errorf("failed to decode amenities: %w", err)
		}
	}
	return &society, nil
}

// marshalAmenities stores the amenity list as a JSON column.
func marshalAmenities(amenities []string) (sql.NullString, error) {
	if len(amenities) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(amenities)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
