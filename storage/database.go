package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobportal/backend/config"
	"github.com/jobportal/backend/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// OpenDatabase opens the Postgres connection shared by the chat store and job lookup
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is empty")
	}

	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sql db: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	return db, nil
}

// Migrate applies the bundled chat schema migrations
func Migrate(ctx context.Context, db *gorm.DB) (err error) {
	log := logger.Component("Migrate")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve sql db: %w", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire migration connection: %w", err)
	}

	driver, err := migratepostgres.WithConnection(ctx, conn, &migratepostgres.Config{
		MigrationsTable: "chat_schema_migrations",
	})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to initialize postgres driver: %w", err)
	}
	defer func() {
		if closeErr := driver.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close migration connection: %w", closeErr)
		}
	}()

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("No new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if version, dirty, verr := migrator.Version(); verr == nil {
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations applied")
	}
	return nil
}
