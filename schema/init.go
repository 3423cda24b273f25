// Package schema: safe database initialization — create only missing tables, never drop or overwrite.

package schema

import (
	"database/sql"
	"log"
)

const (
	tableSocieties      = "societies"
	tableUsers          = "users"
	tableComplaints     = "complaints"
	tableComplaintVotes = "complaint_votes"
)

// InitializeDatabase ensures core tables exist. Checks INFORMATION_SCHEMA.TABLES; creates only
// missing tables in order: societies → users → complaints → complaint_votes. Does not drop or
// recreate tables; does not remove data.
func InitializeDatabase(db *sql.DB) {
	// 1. societies
	if exists, err := tableExists(db, tableSocieties); err != nil {
		log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", tableSocieties, err)
	} else if exists {
		log.Println("[SCHEMA] societies table exists")
	} else {
		createSocietiesTable(db)
		log.Println("[SCHEMA] created societies table")
	}

	// 2. users (depends on societies)
	if exists, err := tableExists(db, tableUsers); err != nil {
		log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", tableUsers, err)
	} else if exists {
		log.Println("[SCHEMA] users table exists")
	} else {
		createUsersTable(db)
		log.Println("[SCHEMA] created users table")
	}

	// 3. complaints (depends on societies and users)
	if exists, err := tableExists(db, tableComplaints); err != nil {
		log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", tableComplaints, err)
	} else if exists {
		log.Println("[SCHEMA] complaints table exists")
	} else {
		createComplaintsTable(db)
		log.Println("[SCHEMA] created complaints table")
	}

	// 4. complaint_votes (depends on complaints and users)
	if exists, err := tableExists(db, tableComplaintVotes); err != nil {
		log.Fatalf("[SCHEMA] Failed to check if table %s exists: %v", tableComplaintVotes, err)
	} else if exists {
		log.Println("[SCHEMA] complaint_votes table exists")
	} else {
		createComplaintVotesTable(db)
		log.Println("[SCHEMA] created complaint_votes table")
	}
}

func createSocietiesTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS societies (
    society_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    name VARCHAR(255) UNIQUE NOT NULL COMMENT 'Society display name',
    address TEXT NOT NULL COMMENT 'Full postal address',
    registration_number VARCHAR(100) NULL COMMENT 'Government registration number',
    total_wings INT NULL,
    total_floors INT NULL,
    total_flats INT NULL,
    amenities JSON NULL COMMENT 'List of amenity names',
    subscription_status VARCHAR(50) NOT NULL DEFAULT 'ACTIVE',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_society_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table %s: %v", tableSocieties, err)
	}
}

func createUsersTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS users (
    user_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    society_id BIGINT NOT NULL COMMENT 'Tenant the user belongs to',
    full_name VARCHAR(255) NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    phone_number VARCHAR(20) NULL,
    password_hash VARCHAR(255) NOT NULL COMMENT 'bcrypt hash',
    role VARCHAR(50) NOT NULL DEFAULT 'RESIDENT' COMMENT 'ADMIN, RESIDENT, VENDOR or GUARD',
    flat_no VARCHAR(50) NULL,
    reputation_score INT NOT NULL DEFAULT 100,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_user_society (society_id),
    INDEX idx_user_role (role),
    INDEX idx_user_email (email),
    CONSTRAINT fk_user_society FOREIGN KEY (society_id) REFERENCES societies(society_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table %s: %v", tableUsers, err)
	}
}

func createComplaintsTable(db *sql.DB) {
	q := `
CREATE TABLE IF NOT EXISTS complaints (
    complaint_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    society_id BIGINT NOT NULL COMMENT 'Tenant the complaint belongs to',
    user_id BIGINT NOT NULL COMMENT 'Reporting resident',
    title VARCHAR(255) NOT NULL,
    description TEXT NOT NULL,
    category VARCHAR(100) NOT NULL COMMENT 'PLUMBING, ELECTRICAL, SECURITY, ...',
    status VARCHAR(50) NOT NULL DEFAULT 'PENDING_VERIFICATION',
    severity VARCHAR(50) NOT NULL DEFAULT 'LOW',
    image_url TEXT NULL COMMENT 'Attached media, validated at creation',
    upvotes INT NOT NULL DEFAULT 0 COMMENT 'Counter mirror of complaint_votes',
    assigned_vendor_id BIGINT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NULL ON UPDATE CURRENT_TIMESTAMP,
    INDEX idx_complaint_society (society_id),
    INDEX idx_complaint_status (status),
    INDEX idx_complaint_created (created_at),
    CONSTRAINT fk_complaint_society FOREIGN KEY (society_id) REFERENCES societies(society_id),
    CONSTRAINT fk_complaint_user FOREIGN KEY (user_id) REFERENCES users(user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table %s: %v", tableComplaints, err)
	}
}

func createComplaintVotesTable(db *sql.DB) {
	// The unique key is the idempotency guard for voting. All duplicate
	// detection relies on it, so it must never be dropped.
	q := `
CREATE TABLE IF NOT EXISTS complaint_votes (
    vote_id BIGINT PRIMARY KEY AUTO_INCREMENT,
    complaint_id BIGINT NOT NULL,
    user_id BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE KEY uq_complaint_user (complaint_id, user_id),
    INDEX idx_vote_complaint (complaint_id),
    CONSTRAINT fk_vote_complaint FOREIGN KEY (complaint_id) REFERENCES complaints(complaint_id),
    CONSTRAINT fk_vote_user FOREIGN KEY (user_id) REFERENCES users(user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`
	if _, err := db.Exec(q); err != nil {
		log.Fatalf("[SCHEMA] Failed to create table %s: %v", tableComplaintVotes, err)
	}
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`,
		table,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
