package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open database %s: %v", path, err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}

// Migrate runs AutoMigrate in dependency order: profiles and clients first,
// then everything that references them.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&UserProfile{},
		&Client{},
	); err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&TaskItem{},
		&CalendarEvent{},
		&CommunityContent{},
		&PresentationLink{},
	); err != nil {
		return err
	}

	return db.AutoMigrate(
		&TaskNotification{},
		&FCMToken{},
		&ActivityLog{},
	)
}
