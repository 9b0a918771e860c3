package config

import (
	"fmt"
	"strings"

	"github.com/andrewpaige1/studybuddy-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database named by dbURL and migrates the schema.
// postgres:// and postgresql:// URLs use the postgres driver; anything else
// is treated as a sqlite DSN.
func Connect(dbURL string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dbURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.StudyPlan{},
		&models.Note{},
		&models.FlashcardSet{},
		&models.Flashcard{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return nil
}

func dialectorFor(dbURL string) gorm.Dialector {
	if IsPostgresURL(dbURL) {
		return postgres.Open(dbURL)
	}
	return sqlite.Open(dbURL)
}

func IsPostgresURL(dbURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(dbURL))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}
