package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"

	"github.com/lib/pq"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalRepository.Create", "plate", rt.Plate, "cpf", rt.CustomerCPF)

	query := `INSERT INTO aluguel (data_retirada, data_prevista_devolucao, km_previsto, valor_previsto, num_funcionario, placa, cpf_cliente)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING num_locacao`
	err := r.db.QueryRowContext(ctx, query,
		rt.PickupDate, rt.ExpectedReturnDate, rt.ExpectedMileage, rt.ExpectedPrice, rt.EmployeeID, rt.Plate, rt.CustomerCPF,
	).Scan(&rt.ID)
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.Create", err, "plate", rt.Plate)
		return err
	}

	if len(rt.Accessories) > 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO aluguel_acessorio (num_locacao, tipo_acessorio) SELECT $1, unnest($2::text[])`,
			rt.ID, pq.Array(rt.Accessories))
		if err != nil {
			logger.ExitMethodWithError("rentalRepository.Create", err, "rentalID", rt.ID)
			return err
		}
	}

	logger.ExitMethod("rentalRepository.Create", "rentalID", rt.ID)
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	logger.EnterMethod("rentalRepository.GetByID", "rentalID", id)

	rt := &domain.Rental{}
	query := `
		SELECT a.num_locacao, a.data_retirada, a.data_prevista_devolucao, a.km_previsto, a.valor_previsto,
		       a.num_funcionario, a.placa, a.cpf_cliente, c.tipo_categoria, cat.preco_diaria,
		       COALESCE((SELECT array_agg(aa.tipo_acessorio ORDER BY aa.tipo_acessorio)
		                 FROM aluguel_acessorio aa WHERE aa.num_locacao = a.num_locacao), '{}') AS acessorios,
		       EXISTS (SELECT 1 FROM devolucao d WHERE d.num_locacao = a.num_locacao) AS devolvido
		FROM aluguel a
		JOIN carro c ON a.placa = c.placa
		JOIN categoria cat ON c.tipo_categoria = cat.tipo
		WHERE a.num_locacao = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.PickupDate, &rt.ExpectedReturnDate, &rt.ExpectedMileage, &rt.ExpectedPrice,
		&rt.EmployeeID, &rt.Plate, &rt.CustomerCPF, &rt.Category, &rt.DailyRate,
		(*pq.StringArray)(&rt.Accessories), &rt.Returned,
	)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("rentalRepository.GetByID", "rentalID", id, "found", false)
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.GetByID", err, "rentalID", id)
		return nil, err
	}

	logger.ExitMethod("rentalRepository.GetByID", "rentalID", id)
	return rt, nil
}

func (r *rentalRepository) GetOpenForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	logger.EnterMethod("rentalRepository.GetOpenForUpdate", "rentalID", id)

	rt := &domain.Rental{}
	query := `
		SELECT a.num_locacao, a.data_retirada, a.data_prevista_devolucao, a.km_previsto, a.valor_previsto,
		       a.num_funcionario, a.placa, a.cpf_cliente, c.tipo_categoria, cat.preco_diaria
		FROM aluguel a
		JOIN carro c ON a.placa = c.placa
		JOIN categoria cat ON c.tipo_categoria = cat.tipo
		WHERE a.num_locacao = $1
		  AND NOT EXISTS (SELECT 1 FROM devolucao d WHERE d.num_locacao = a.num_locacao)
		FOR UPDATE OF a`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rt.ID, &rt.PickupDate, &rt.ExpectedReturnDate, &rt.ExpectedMileage, &rt.ExpectedPrice,
		&rt.EmployeeID, &rt.Plate, &rt.CustomerCPF, &rt.Category, &rt.DailyRate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethod("rentalRepository.GetOpenForUpdate", "rentalID", id, "found", false)
		return nil, domain.ErrRentalNotOpen
	}
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.GetOpenForUpdate", err, "rentalID", id)
		return nil, err
	}

	logger.ExitMethod("rentalRepository.GetOpenForUpdate", "rentalID", id)
	return rt, nil
}

func (r *rentalRepository) HasOpenRental(ctx context.Context, plate string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM aluguel a
			WHERE a.placa = $1
			  AND NOT EXISTS (SELECT 1 FROM devolucao d WHERE d.num_locacao = a.num_locacao)
		)`
	var open bool
	if err := r.db.QueryRowContext(ctx, query, plate).Scan(&open); err != nil {
		return false, err
	}
	return open, nil
}

func (r *rentalRepository) GetCustomerHistory(ctx context.Context, cpf string, excludeRentalID int32, recentLimit int) (*domain.CustomerHistory, error) {
	logger.EnterMethod("rentalRepository.GetCustomerHistory", "cpf", cpf, "rentalID", excludeRentalID)

	h := &domain.CustomerHistory{}
	countsQuery := `
		SELECT
			(SELECT COUNT(*) FROM aluguel WHERE cpf_cliente = $1),
			(SELECT COUNT(DISTINCT c.tipo_categoria)
			   FROM aluguel a JOIN carro c ON a.placa = c.placa
			  WHERE a.cpf_cliente = $1),
			(SELECT COUNT(*) FROM categoria),
			(SELECT COUNT(DISTINCT aa.tipo_acessorio)
			   FROM aluguel a JOIN aluguel_acessorio aa ON a.num_locacao = aa.num_locacao
			  WHERE a.cpf_cliente = $1),
			(SELECT COUNT(*) FROM acessorio)`
	err := r.db.QueryRowContext(ctx, countsQuery, cpf).Scan(
		&h.TotalRentals, &h.CategoriesUsed, &h.CategoriesTotal, &h.AccessoriesUsed, &h.AccessoriesTotal,
	)
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.GetCustomerHistory", err, "cpf", cpf)
		return nil, err
	}

	recentQuery := `
		SELECT a.num_locacao,
		       EXISTS (
		           SELECT 1 FROM multa m
		           JOIN devolucao d ON d.num_pagamento = m.num_pagamento
		           WHERE d.num_locacao = a.num_locacao
		       ) AS teve_multa
		FROM aluguel a
		WHERE a.cpf_cliente = $1 AND a.num_locacao <> $2
		ORDER BY a.data_retirada DESC, a.num_locacao DESC
		LIMIT $3`
	rows, err := r.db.QueryContext(ctx, recentQuery, cpf, excludeRentalID, recentLimit)
	if err != nil {
		logger.ExitMethodWithError("rentalRepository.GetCustomerHistory", err, "cpf", cpf)
		return nil, err
	}
	defer rows.Close()

	h.RecentRentals = []domain.PastRental{}
	for rows.Next() {
		var p domain.PastRental
		if err := rows.Scan(&p.RentalID, &p.HadFine); err != nil {
			return nil, err
		}
		h.RecentRentals = append(h.RecentRentals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.ExitMethod("rentalRepository.GetCustomerHistory", "cpf", cpf, "totalRentals", h.TotalRentals)
	return h, nil
}
