package db

import (
	"log"
	"os"

	"campaignkeeper/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=campaignkeeper password=postgres sslmode=disable"
	}

	var openErr error
	// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey
	DB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if openErr != nil {
		log.Fatal("failed to connect to the database:", openErr)
	}

	migrateErr := DB.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.UserGameRole{},
		&models.Character{},
		&models.Item{},
		&models.Category{},
		&models.ItemCharacter{},
		&models.HistoryLog{},
	)
	if migrateErr != nil {
		log.Fatal("failed to migrate:", migrateErr)
	}

	log.Println("Database connected and migrated")
}
