package postgres

import (
	"context"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"
)

type settlementRepository struct {
	db DBTX
}

func NewSettlementRepository(db DBTX) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) CreatePayment(ctx context.Context, p *domain.Payment) error {
	logger.EnterMethod("settlementRepository.CreatePayment", "total", p.Total, "method", p.Method)

	query := `INSERT INTO pagamento (valor_total, forma_pagamento) VALUES ($1, $2) RETURNING num_pagamento`
	if err := r.db.QueryRowContext(ctx, query, p.Total, p.Method).Scan(&p.ID); err != nil {
		logger.ExitMethodWithError("settlementRepository.CreatePayment", err)
		return err
	}

	logger.ExitMethod("settlementRepository.CreatePayment", "paymentID", p.ID)
	return nil
}

// CreateReturn closes the rental. A second return for the same rental hits
// the unique constraint on devolucao.num_locacao and reports
// domain.ErrRentalNotOpen.
func (r *settlementRepository) CreateReturn(ctx context.Context, ret *domain.Return) error {
	logger.EnterMethod("settlementRepository.CreateReturn", "rentalID", ret.RentalID, "paymentID", ret.PaymentID)

	query := `INSERT INTO devolucao (num_locacao, num_pagamento, combustivel_completo, estado_carro, data_real_devolucao, km_registro, valor_danos)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		ret.RentalID, ret.PaymentID, ret.FuelFull, ret.CarCondition, ret.ReturnDate, ret.Mileage, ret.DamageValue)
	if isUniqueViolation(err) {
		logger.ExitMethodWithError("settlementRepository.CreateReturn", err, "rentalID", ret.RentalID)
		return domain.ErrRentalNotOpen
	}
	if err != nil {
		logger.ExitMethodWithError("settlementRepository.CreateReturn", err, "rentalID", ret.RentalID)
		return err
	}

	logger.ExitMethod("settlementRepository.CreateReturn", "rentalID", ret.RentalID)
	return nil
}

func (r *settlementRepository) CreateFine(ctx context.Context, f *domain.Fine) error {
	query := `INSERT INTO multa (num_pagamento, tipo_multa, valor, codigo_motivo, referencia) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, f.PaymentID, f.Type, f.Amount, f.ReasonCode, f.Reference)
	return err
}

func (r *settlementRepository) CreateDiscount(ctx context.Context, d *domain.Discount) error {
	query := `INSERT INTO desconto (num_pagamento, tipo_desconto, valor, codigo_desconto, flag_ativo) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, d.PaymentID, d.Type, d.Amount, d.Code, d.Active)
	return err
}
