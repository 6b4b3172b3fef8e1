package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSettlementRepository_CreatePayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)
	payment := &domain.Payment{Total: decimal.RequireFromString("1100.00"), Method: domain.DefaultPaymentMethod}

	mock.ExpectQuery("INSERT INTO pagamento \\(valor_total, forma_pagamento\\)").
		WithArgs(payment.Total, "Cartão Crédito").
		WillReturnRows(sqlmock.NewRows([]string{"num_pagamento"}).AddRow(31))

	err = repo.CreatePayment(context.Background(), payment)
	assert.NoError(t, err)
	assert.Equal(t, int32(31), payment.ID)
}

func TestSettlementRepository_CreateReturn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)
	ctx := context.Background()
	ret := &domain.Return{
		RentalID:     5,
		PaymentID:    31,
		FuelFull:     false,
		CarCondition: "OK",
		ReturnDate:   time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		DamageValue:  decimal.Zero,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO devolucao").
			WithArgs(int32(5), int32(31), false, "OK", ret.ReturnDate, nil, decimal.Zero).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.CreateReturn(ctx, ret))
	})

	t.Run("Rental already returned", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO devolucao").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.CreateReturn(ctx, ret)
		assert.ErrorIs(t, err, domain.ErrRentalNotOpen)
	})

	t.Run("Other failure", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO devolucao").
			WillReturnError(errors.New("disk full"))

		err := repo.CreateReturn(ctx, ret)
		assert.EqualError(t, err, "disk full")
	})
}

func TestSettlementRepository_FinesAndDiscounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)
	ctx := context.Background()

	ref := "3 dias"
	mock.ExpectExec("INSERT INTO multa").
		WithArgs(int32(31), domain.FineLateReturn, decimal.NewFromInt(150), "ATRASO", ref).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO multa").
		WithArgs(int32(31), domain.FineFuelNotFull, decimal.NewFromInt(100), "TANQUE", nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO desconto").
		WithArgs(int32(31), domain.DiscountLoyalty, decimal.NewFromInt(50), "LOYALTY_50", true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.CreateFine(ctx, &domain.Fine{PaymentID: 31, Type: domain.FineLateReturn, Amount: decimal.NewFromInt(150), ReasonCode: "ATRASO", Reference: &ref}))
	assert.NoError(t, repo.CreateFine(ctx, &domain.Fine{PaymentID: 31, Type: domain.FineFuelNotFull, Amount: decimal.NewFromInt(100), ReasonCode: "TANQUE"}))
	assert.NoError(t, repo.CreateDiscount(ctx, &domain.Discount{PaymentID: 31, Type: domain.DiscountLoyalty, Amount: decimal.NewFromInt(50), Code: "LOYALTY_50", Active: true}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
