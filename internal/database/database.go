package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patinhas/adoption-api/internal/config"
	"github.com/patinhas/adoption-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "host", cfg.DBHost, "db", cfg.DBName)
	return db, nil
}

// Migrate creates or updates every table, foreign key and check constraint.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Adoption{}, "Questions", &models.AdoptionQuestion{}); err != nil {
		return fmt.Errorf("setup adoption_questions join table: %w", err)
	}
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Address{},
		&models.Pet{},
		&models.PetImage{},
		&models.Donation{},
		&models.QuestionType{},
		&models.Question{},
		&models.Adoption{},
		&models.AdoptionQuestion{},
		&models.Answer{},
		&models.SystemLog{},
	)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
