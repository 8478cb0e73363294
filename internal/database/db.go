package database

import (
	"log"
	"os"

	"github.com/justbuildingit/post-factory/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() *gorm.DB {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		// Local dev default, matches docker-compose.
		dsn = "host=localhost user=postgres password=password dbname=postfactory port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	DB.AutoMigrate(&models.Post{}, &models.PostEvent{}, &models.MediaAsset{})
	return DB
}
