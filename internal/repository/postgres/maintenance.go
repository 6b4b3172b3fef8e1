package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"
)

type maintenanceRepository struct {
	db DBTX
}

func NewMaintenanceRepository(db DBTX) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.Maintenance) error {
	logger.EnterMethod("maintenanceRepository.Create", "plate", m.Plate, "cost", m.Cost)

	query := `INSERT INTO manutencao (placa_carro, custo, data_inicio, descricao)
	          VALUES ($1, $2, $3, $4) RETURNING num_manutencao`
	err := r.db.QueryRowContext(ctx, query, m.Plate, m.Cost, m.StartDate, m.Description).Scan(&m.ID)
	if err != nil {
		logger.ExitMethodWithError("maintenanceRepository.Create", err, "plate", m.Plate)
		return err
	}

	logger.ExitMethod("maintenanceRepository.Create", "maintenanceID", m.ID)
	return nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	m := &domain.Maintenance{}
	query := `SELECT num_manutencao, placa_carro, COALESCE(custo, 0), data_inicio, data_retorno, COALESCE(descricao, '')
	          FROM manutencao WHERE num_manutencao = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Plate, &m.Cost, &m.StartDate, &m.CompletionDate, &m.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMaintenanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) ReleaseCompleted(ctx context.Context, day time.Time) ([]string, error) {
	query := `
		UPDATE carro c
		SET status_carro = $1, num_manutencao = NULL
		FROM manutencao m
		WHERE c.num_manutencao = m.num_manutencao
		  AND c.status_carro = $2
		  AND m.data_retorno IS NOT NULL
		  AND m.data_retorno <= $3
		RETURNING c.placa
	`
	logger.DatabaseCall("UPDATE", "release completed maintenance", "day", day.Format("2006-01-02"))

	rows, err := r.db.QueryContext(ctx, query, domain.CarStatusAvailable, domain.CarStatusMaintenance, day)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return nil, err
	}
	defer rows.Close()

	plates := []string{}
	for rows.Next() {
		var plate string
		if err := rows.Scan(&plate); err != nil {
			return nil, err
		}
		plates = append(plates, plate)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.DatabaseResult("UPDATE", int64(len(plates)), nil)
	return plates, nil
}
