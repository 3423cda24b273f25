// seeddb seeds a development database with one society, a few users and a
// sample complaint so the API can be exercised without manual setup.
// Usage: from project root, run: go run ./cmd/seeddb
// Requires .env (or env) with DB_* settings. Safe to re-run: existing
// rows are detected by name/email and skipped.
package main

import (
	"database/sql"
	"fmt"
	"log"

	"societyhub/config"
	"societyhub/models"
	"societyhub/repository"
	"societyhub/schema"
	"societyhub/utils"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}
	cfg := config.LoadConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("DB open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("DB ping: %v", err)
	}
	schema.InitializeDatabase(db)

	societyRepo := repository.NewSocietyRepository(db)
	userRepo := repository.NewUserRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)

	// --- 1) Society ---
	society, err := societyRepo.GetSocietyByName("Green Meadows")
	if err != nil {
		log.Fatalf("Society lookup: %v", err)
	}
	if society == nil {
		society = &models.Society{
			Name:               "Green Meadows",
			Address:            "14 Lakeview Road, Pune",
			SubscriptionStatus: "ACTIVE",
			Amenities:          []string{"GYM", "POOL", "CLUBHOUSE"},
		}
		if err := societyRepo.CreateSociety(society); err != nil {
			log.Fatalf("Create society: %v", err)
		}
		log.Printf("Created society %d (%s)", society.SocietyID, society.Name)
	} else {
		log.Printf("Society %d (%s) already exists", society.SocietyID, society.Name)
	}

	// --- 2) Users ---
	seedUsers := []struct {
		name  string
		email string
		role  models.Role
		flat  string
	}{
		{"Asha Kulkarni", "asha@example.com", models.RoleAdmin, "A-101"},
		{"Ravi Sharma", "ravi@example.com", models.RoleResident, "B-204"},
		{"Meera Iyer", "meera@example.com", models.RoleResident, "C-302"},
		{"Suresh Patil", "suresh@example.com", models.RoleResident, "A-405"},
		{"FixItAll Services", "vendor@example.com", models.RoleVendor, ""},
	}

	userIDs := make(map[string]int64)
	for _, su := range seedUsers {
		existing, err := userRepo.GetUserByEmail(su.email)
		if err != nil {
			log.Fatalf("User lookup %s: %v", su.email, err)
		}
		if existing != nil {
			userIDs[su.email] = existing.UserID
			log.Printf("User %s already exists (id %d)", su.email, existing.UserID)
			continue
		}
		hash, err := utils.HashPassword("password123")
		if err != nil {
			log.Fatalf("Hash password: %v", err)
		}
		u := &models.User{
			SocietyID:       society.SocietyID,
			FullName:        su.name,
			Email:           su.email,
			PasswordHash:    hash,
			Role:            su.role,
			ReputationScore: models.DefaultReputationScore,
		}
		if su.flat != "" {
			u.FlatNo = sql.NullString{String: su.flat, Valid: true}
		}
		if err := userRepo.CreateUser(u); err != nil {
			log.Fatalf("Create user %s: %v", su.email, err)
		}
		userIDs[su.email] = u.UserID
		log.Printf("Created user %d (%s, %s)", u.UserID, su.name, su.role)
	}

	// --- 3) Sample complaint ---
	complaints, err := complaintRepo.GetComplaintsBySociety(society.SocietyID)
	if err != nil {
		log.Fatalf("Complaint lookup: %v", err)
	}
	if len(complaints) > 0 {
		log.Printf("Society already has %d complaints, skipping seed complaint", len(complaints))
		return
	}

	c := &models.Complaint{
		SocietyID:   society.SocietyID,
		UserID:      userIDs["ravi@example.com"],
		Title:       "Water leakage in B wing basement",
		Description: "Standing water near the parking entrance for two days.",
		Category:    "PLUMBING",
		Status:      models.StatusPendingVerification,
		Severity:    models.SeverityMedium,
	}
	if err := complaintRepo.CreateComplaint(c); err != nil {
		log.Fatalf("Create complaint: %v", err)
	}
	log.Printf("Created complaint %d (%s)", c.ComplaintID, c.Title)
	log.Println("Seed complete")
}
