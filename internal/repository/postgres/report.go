package postgres

import (
	"context"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) ListFinesByRental(ctx context.Context, rentalID int32) ([]domain.FineRecord, error) {
	query := `
		SELECT m.num_pagamento, m.tipo_multa, m.valor, m.codigo_motivo, m.referencia,
		       p.valor_total AS valor_pagamento
		FROM multa m
		JOIN pagamento p ON m.num_pagamento = p.num_pagamento
		JOIN devolucao d ON d.num_pagamento = p.num_pagamento
		WHERE d.num_locacao = $1`

	fines := []domain.FineRecord{}
	if err := r.db.SelectContext(ctx, &fines, query, rentalID); err != nil {
		return nil, err
	}
	return fines, nil
}

func (r *reportRepository) ListDiscountsByRental(ctx context.Context, rentalID int32) ([]domain.DiscountRecord, error) {
	query := `
		SELECT ds.num_pagamento, ds.tipo_desconto, ds.valor, ds.codigo_desconto, ds.flag_ativo,
		       p.valor_total AS valor_pagamento
		FROM desconto ds
		JOIN pagamento p ON ds.num_pagamento = p.num_pagamento
		JOIN devolucao dev ON dev.num_pagamento = p.num_pagamento
		WHERE dev.num_locacao = $1`

	discounts := []domain.DiscountRecord{}
	if err := r.db.SelectContext(ctx, &discounts, query, rentalID); err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *reportRepository) ListFinesByCustomer(ctx context.Context, cpf string) ([]domain.CustomerFineRecord, error) {
	query := `
		SELECT m.num_pagamento, m.tipo_multa, m.valor, m.codigo_motivo, m.referencia,
		       a.num_locacao, a.data_retirada, c.nome AS nome_carro
		FROM multa m
		JOIN pagamento p ON m.num_pagamento = p.num_pagamento
		JOIN devolucao d ON d.num_pagamento = p.num_pagamento
		JOIN aluguel a ON a.num_locacao = d.num_locacao
		JOIN carro c ON a.placa = c.placa
		WHERE a.cpf_cliente = $1
		ORDER BY a.data_retirada DESC`

	fines := []domain.CustomerFineRecord{}
	if err := r.db.SelectContext(ctx, &fines, query, cpf); err != nil {
		return nil, err
	}
	return fines, nil
}

func (r *reportRepository) ListOverdueRentals(ctx context.Context, day time.Time) ([]domain.OverdueRental, error) {
	query := `
		SELECT a.num_locacao, a.placa, a.cpf_cliente, a.data_prevista_devolucao, cat.preco_diaria
		FROM aluguel a
		JOIN carro c ON a.placa = c.placa
		JOIN categoria cat ON c.tipo_categoria = cat.tipo
		WHERE a.data_prevista_devolucao < $1
		  AND NOT EXISTS (SELECT 1 FROM devolucao d WHERE d.num_locacao = a.num_locacao)
		ORDER BY a.data_prevista_devolucao`

	rentals := []domain.OverdueRental{}
	if err := r.db.SelectContext(ctx, &rentals, query, day); err != nil {
		return nil, err
	}
	return rentals, nil
}
