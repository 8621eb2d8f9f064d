package main

import (
	"log"
	"os"
	"time"

	"socratic-notes-be/internal/model"
	"socratic-notes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting AI Configuration Seeder...")

	seedConfigurations(db)

	log.Println("✅ Success: AI Configuration seeding completed.")
}

func seedConfigurations(db *gorm.DB) {
	log.Println("Seeding AI Configurations...")

	configurations := []model.AiConfiguration{
		{
			Id:          uuid.New(),
			Key:         "dialogue_max_questions",
			Value:       "3",
			ValueType:   "number",
			Description: "Maximum questions generated when starting a dialogue",
			Category:    "dialogue",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "dialogue_followup_max_questions",
			Value:       "2",
			ValueType:   "number",
			Description: "Maximum follow-up questions when continuing a dialogue",
			Category:    "dialogue",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "dialogue_parser_min_length",
			Value:       "10",
			ValueType:   "number",
			Description: "Minimum rune length for heuristic fallback question candidates",
			Category:    "dialogue",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "dialogue_default_intensity",
			Value:       "MODERATE",
			ValueType:   "string",
			Description: "Default questioning intensity when the request does not pick one",
			Category:    "dialogue",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
	}

	for _, config := range configurations {
		var existing model.AiConfiguration
		err := db.Where("key = ?", config.Key).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&config).Error; err != nil {
				log.Printf("Warn: Failed to seed config %s: %v", config.Key, err)
			} else {
				log.Printf("Seeded config: %s = %s", config.Key, config.Value)
			}
		} else if err == nil {
			log.Printf("Config %s already exists, skipping", config.Key)
		} else {
			log.Printf("Warn: Failed to check config %s: %v", config.Key, err)
		}
	}
}
