// Package postgres implements the repository interfaces on top of gorm. It
// targets PostgreSQL in production. PostgreSQL-only SQL is issued behind a
// dialect check, so the same code runs against any gorm dialector.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sloggorm "github.com/orandin/slog-gorm"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
)

type GormRepo struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ repository.QuestionRepo = (*GormRepo)(nil)
var _ repository.CategoryRepo = (*GormRepo)(nil)
var _ repository.Store = (*GormRepo)(nil)

// Open connects to PostgreSQL, routing gorm's logging through logger.
func Open(dsn string, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: sloggorm.New(sloggorm.WithHandler(logger.Handler())),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func New(db *gorm.DB, logger *slog.Logger) *GormRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormRepo{db: db, logger: logger}
}

// AutoMigrate creates or updates the questions and categories tables.
func (r *GormRepo) AutoMigrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Category{}, &models.Question{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *GormRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InTx runs fn on a repository bound to a gorm transaction. Nested calls
// become savepoints.
func (r *GormRepo) InTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{db: tx, logger: r.logger})
	})
}

func (r *GormRepo) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

// syncSequence moves the PostgreSQL id sequence of table past the highest id
// after a row was inserted with an explicit id.
func (r *GormRepo) syncSequence(ctx context.Context, table string) error {
	if !r.isPostgres() {
		return nil
	}
	q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table)
	return r.db.WithContext(ctx).Exec(q).Error
}
