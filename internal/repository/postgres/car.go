package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"
)

type carRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `c.placa, c.nome, c.ano, c.tipo_categoria, cat.preco_diaria, c.imagem_url,
	       c.status_carro, c.quilometragem, c.num_manutencao`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCar(row rowScanner) (*domain.Car, error) {
	car := &domain.Car{}
	err := row.Scan(&car.Plate, &car.Name, &car.Year, &car.Category, &car.DailyRate, &car.ImageURL,
		&car.Status, &car.Mileage, &car.MaintenanceID)
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (r *carRepository) GetByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	logger.EnterMethod("carRepository.GetByPlate", "plate", plate)

	query := `SELECT ` + carColumns + `
		FROM carro c
		JOIN categoria cat ON cat.tipo = c.tipo_categoria
		WHERE c.placa = $1`

	car, err := scanCar(r.db.QueryRowContext(ctx, query, plate))
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("carRepository.GetByPlate", "plate", plate, "found", false)
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		logger.ExitMethodWithError("carRepository.GetByPlate", err, "plate", plate)
		return nil, err
	}

	logger.ExitMethod("carRepository.GetByPlate", "plate", plate)
	return car, nil
}

func (r *carRepository) List(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + `
		FROM carro c
		JOIN categoria cat ON cat.tipo = c.tipo_categoria`

	var args []any
	if status != "" {
		query += " WHERE c.status_carro = $1"
		args = append(args, status)
	}
	query += " ORDER BY c.nome"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *car)
	}
	return cars, rows.Err()
}

func (r *carRepository) UpdateStatus(ctx context.Context, plate string, status domain.CarStatus, maintenanceID *int32) error {
	logger.EnterMethod("carRepository.UpdateStatus", "plate", plate, "status", status)

	var (
		result sql.Result
		err    error
	)
	if maintenanceID != nil {
		result, err = r.db.ExecContext(ctx,
			`UPDATE carro SET status_carro = $1, num_manutencao = $2 WHERE placa = $3`,
			status, *maintenanceID, plate)
	} else {
		result, err = r.db.ExecContext(ctx,
			`UPDATE carro SET status_carro = $1 WHERE placa = $2`,
			status, plate)
	}
	if err != nil {
		logger.ExitMethodWithError("carRepository.UpdateStatus", err, "plate", plate)
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.ExitMethodWithError("carRepository.UpdateStatus", domain.ErrCarNotFound, "plate", plate)
		return domain.ErrCarNotFound
	}

	logger.ExitMethod("carRepository.UpdateStatus", "plate", plate, "status", status)
	return nil
}

func (r *carRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tipo, preco_diaria, COALESCE(descricao, '') FROM categoria ORDER BY tipo`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.Type, &cat.DailyRate, &cat.Description); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}
