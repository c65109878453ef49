package main

import (
	"log"
	"os"

	"go-bizbook/internal/model"
	"go-bizbook/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator tool: resets a user's password directly in the database and
// rotates their token version so any open session is invalidated.
//
// Usage: RESET_USERNAME=alice RESET_PASSWORD=newsecret go run ./cmd/reset-password
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	username := os.Getenv("RESET_USERNAME")
	newPassword := os.Getenv("RESET_PASSWORD")
	if username == "" || newPassword == "" {
		log.Fatal("❌ RESET_USERNAME and RESET_PASSWORD must be set")
	}
	if len(newPassword) < 6 {
		log.Fatal("❌ RESET_PASSWORD must be at least 6 characters")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the user
	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", username, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update password and kill open sessions
	updates := map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": uuid.NewString(),
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset, open sessions invalidated", username)
}
