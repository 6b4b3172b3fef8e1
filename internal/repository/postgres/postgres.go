package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// pgUniqueViolation is the SQLSTATE raised when a unique constraint is hit.
const pgUniqueViolation = "23505"

// DBTX is satisfied by both *sql.DB and *sql.Tx, so a repository can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.MaintenanceRepository
	repository.RentalRepository
	repository.SettlementRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		CarRepository:         NewCarRepository(db),
		MaintenanceRepository: NewMaintenanceRepository(db),
		RentalRepository:      NewRentalRepository(db),
		SettlementRepository:  NewSettlementRepository(db),
		ReportRepository:      NewReportRepository(sqlx.NewDb(db, "postgres")),
	}
}

// WithinTx implements repository.Transactor.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op once the transaction has been committed.
	defer tx.Rollback()

	repos := repository.Repositories{
		Cars:        NewCarRepository(tx),
		Maintenance: NewMaintenanceRepository(tx),
		Rentals:     NewRentalRepository(tx),
		Settlements: NewSettlementRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		logger.WarnContext(ctx, "Rolling back transaction", "error", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
