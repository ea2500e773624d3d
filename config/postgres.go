package config

import (
	"CivicQuiz/models/postgres"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func postgresDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		envString("POSTGRES_HOST", "localhost"),
		envString("POSTGRES_PORT", "5432"),
		os.Getenv("POSTGRES_DATABASE"),
		envString("POSTGRES_SSLMODE", "disable"))
}

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM() (*gorm.DB, error) {
	// NOTE: See https://github.com/go-gorm/gorm/issues/5409
	sqlConn, err := sql.Open("postgres", postgresDSN())
	if err != nil {
		return nil, fmt.Errorf("error opening postgres: %w", err)
	}

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if os.Getenv("VERBOSE_POSTGRES") == "true" {
		gormConfig.Logger = logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		)
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlConn,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres with gorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting underlying sql db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging postgres: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	slog.Info("[POSTGRES] connected", "host", envString("POSTGRES_HOST", "localhost"))
	return db, nil
}

// MigrateDatabase migrates the GORM models
func MigrateDatabase(db *gorm.DB) error {
	// NOTE: for more info, execute db.Debug().AutoMigrate(...)
	if err := db.AutoMigrate(postgres.All()...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	slog.Info("[POSTGRES] database migrated")
	return nil
}
