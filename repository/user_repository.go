package repository

import (
	"database/sql"
	"fmt"

	"societyhub/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	user_id, society_id, full_name, email, phone_number, role,
	flat_no, password_hash, reputation_score, created_at
`

// CreateUser inserts a new user and fills in its generated ID
func (r *UserRepository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (
			society_id, full_name, email, phone_number, role,
			flat_no, password_hash, reputation_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.Exec(
		query,
		user.SocietyID,
		user.FullName,
		user.Email,
		user.PhoneNumber,
		user.Role,
		user.FlatNo,
		user.PasswordHash,
		user.ReputationScore,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user ID: %w", err)
	}

	user.UserID = userID
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ?`
	return r.scanUser(r.db.QueryRow(query, userID))
}

// GetUserByEmail retrieves a user by email.
// Returns (nil, nil) when no user carries the email.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	user, err := r.scanUser(r.db.QueryRow(query, email))
	if err == ErrUserNotFound {
		return nil, nil
	}
	return user, err
}

// GetUsersBySociety retrieves all users belonging to a society
func (r *UserRepository) GetUsersBySociety(societyID int64) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE society_id = ? ORDER BY created_at ASC`
	return r.queryUsers(query, societyID)
}

// GetUsersByRole retrieves all users holding a role, across societies
func (r *UserRepository) GetUsersByRole(role models.Role) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ? ORDER BY created_at ASC`
	return r.queryUsers(query, role)
}

// AdjustReputation applies a signed delta to a user's reputation score.
// The score has no floor or ceiling and may go negative.
func (r *UserRepository) AdjustReputation(userID int64, delta int) error {
	query := `UPDATE users SET reputation_score = reputation_score + ? WHERE user_id = ?`
	result, err := r.db.Exec(query, delta, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust reputation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.SocietyID,
		&user.FullName,
		&user.Email,
		&user.PhoneNumber,
		&user.Role,
		&user.FlatNo,
		&user.PasswordHash,
		&user.ReputationScore,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) queryUsers(query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.UserID,
			&user.SocietyID,
			&user.FullName,
			&user.Email,
			&user.PhoneNumber,
			&user.Role,
			&user.FlatNo,
			&user.PasswordHash,
			&user.ReputationScore,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
