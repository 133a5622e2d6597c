package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MyelinBots/journalbot-go/config"
)

// DB wraps the gorm handle so repositories share one connection pool.
type DB struct {
	DB *gorm.DB
}

func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DataBase, cfg.SSLMode)
}

func NewDatabase(cfg config.DBConfig) (*DB, error) {
	gormDB, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		// Unique violations come back as gorm.ErrDuplicatedKey so the
		// repositories can detect message redelivery.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	return &DB{DB: gormDB}, nil
}

// RunMigrations applies all pending SQL migrations from the given source
// directory, e.g. "file://migrations".
func RunMigrations(sourceURL string, cfg config.DBConfig) error {
	m, err := migrate.New(sourceURL, DSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
