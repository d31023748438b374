package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/servicepro/servicepro-backend/pkg/database"
)

func main() {
	_ = godotenv.Load()

	if _, err := database.InitDB(); err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer database.CloseDB()

	if err := database.ApplySchema(); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	log.Println("Schema applied")

	if err := database.SeedTaxonomy(); err != nil {
		log.Fatalf("Failed to seed taxonomy: %v", err)
	}
	log.Println("Taxonomy seeded")

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		if err := database.SeedAdmin(adminEmail, adminPassword); err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
		log.Println("Admin account ready")
	}
}
