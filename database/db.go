package database

import (
	"fmt"
	"log/slog"

	"carshare/internal/config"
	"carshare/internal/httpapi/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection, verifies it and brings the schema
// up to date.
func Connect(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("connected to the database")
	return db, nil
}

func migrate(db *gorm.DB) error {
	// The join model carries its own timestamps and composite key, so GORM
	// must be told to use it for the many2many relations before migrating.
	if err := db.SetupJoinTable(&models.User{}, "Cars", &models.UserCar{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Car{}, "Users", &models.UserCar{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.CarBrand{},
		&models.CarModel{},
		&models.Car{},
		&models.UserCar{},
	)
}
