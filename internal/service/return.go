package service

import (
	"context"
	"fmt"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"
	"carcompany-backend/internal/settlement"
	"carcompany-backend/internal/utils"
)

type returnService struct {
	tx                   repository.Transactor
	calc                 *settlement.Calculator
	defaultPaymentMethod string
	now                  func() time.Time
}

func NewReturnService(tx repository.Transactor, calc *settlement.Calculator, defaultPaymentMethod string, now func() time.Time) ReturnService {
	if defaultPaymentMethod == "" {
		defaultPaymentMethod = domain.DefaultPaymentMethod
	}
	return &returnService{
		tx:                   tx,
		calc:                 calc,
		defaultPaymentMethod: defaultPaymentMethod,
		now:                  now,
	}
}

// ReturnCar settles the rental as of today. The rental row stays locked from
// the moment it is read until the transaction commits, so a concurrent return
// of the same rental fails with domain.ErrRentalNotOpen instead of charging
// twice.
func (s *returnService) ReturnCar(ctx context.Context, req ReturnRequest) (*ReturnResult, error) {
	logger.EnterMethod("returnService.ReturnCar", "rentalID", req.RentalID)

	today := utils.Truncate(s.now())
	method := req.PaymentMethod
	if method == "" {
		method = s.defaultPaymentMethod
	}
	damage := settlement.ParseDamageValue(req.DamageValue)

	var out *ReturnResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		rental, err := repos.Rentals.GetOpenForUpdate(ctx, req.RentalID)
		if err != nil {
			return err
		}

		history, err := repos.Rentals.GetCustomerHistory(ctx, rental.CustomerCPF, rental.ID, settlement.CleanRecordWindowSize)
		if err != nil {
			return fmt.Errorf("failed to load customer history: %w", err)
		}

		res := s.calc.Settle(settlement.Input{
			Rental:       rental,
			ReturnDate:   today,
			CarCondition: req.CarCondition,
			FuelFull:     req.FuelFull,
			DamageValue:  damage,
			Mileage:      req.Mileage,
		}, *history)

		payment := &domain.Payment{Total: res.FinalAmount, Method: method}
		if err := repos.Settlements.CreatePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		err = repos.Settlements.CreateReturn(ctx, &domain.Return{
			RentalID:     rental.ID,
			PaymentID:    payment.ID,
			FuelFull:     req.FuelFull,
			CarCondition: req.CarCondition,
			ReturnDate:   today,
			Mileage:      req.Mileage,
			DamageValue:  damage,
		})
		if err != nil {
			return fmt.Errorf("failed to create return: %w", err)
		}

		for i := range res.Fines {
			res.Fines[i].PaymentID = payment.ID
			if err := repos.Settlements.CreateFine(ctx, &res.Fines[i]); err != nil {
				return fmt.Errorf("failed to create fine %s: %w", res.Fines[i].Type, err)
			}
		}
		for i := range res.Discounts {
			res.Discounts[i].PaymentID = payment.ID
			if err := repos.Settlements.CreateDiscount(ctx, &res.Discounts[i]); err != nil {
				return fmt.Errorf("failed to create discount %s: %w", res.Discounts[i].Type, err)
			}
		}

		var maintenanceID *int32
		if res.NeedsMaintenance {
			m := &domain.Maintenance{
				Plate:       rental.Plate,
				Cost:        res.MaintenanceCost,
				StartDate:   today,
				Description: res.MaintenanceDescription,
			}
			if err := repos.Maintenance.Create(ctx, m); err != nil {
				return fmt.Errorf("failed to open maintenance: %w", err)
			}
			maintenanceID = &m.ID
		}

		if err := repos.Cars.UpdateStatus(ctx, rental.Plate, res.CarStatus, maintenanceID); err != nil {
			return fmt.Errorf("failed to update car status: %w", err)
		}

		out = &ReturnResult{
			Result:        res,
			RentalID:      rental.ID,
			PaymentID:     payment.ID,
			ReturnDate:    today,
			MaintenanceID: maintenanceID,
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("returnService.ReturnCar", err, "rentalID", req.RentalID)
		return nil, err
	}

	logger.InfoContext(ctx, "Rental returned",
		"rentalID", out.RentalID,
		"paymentID", out.PaymentID,
		"finalAmount", out.FinalAmount.StringFixed(2),
		"carStatus", out.CarStatus,
	)
	logger.ExitMethod("returnService.ReturnCar", "rentalID", out.RentalID)
	return out, nil
}
