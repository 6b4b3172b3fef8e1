package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"
	"carcompany-backend/internal/utils"
)

type rentalService struct {
	tx         repository.Transactor
	rentalRepo repository.RentalRepository
	now        func() time.Time
}

func NewRentalService(tx repository.Transactor, rentalRepo repository.RentalRepository, now func() time.Time) RentalService {
	return &rentalService{
		tx:         tx,
		rentalRepo: rentalRepo,
		now:        now,
	}
}

func (s *rentalService) OpenRental(ctx context.Context, req OpenRentalRequest) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.OpenRental", "plate", req.Plate, "cpf", req.CustomerCPF)

	pickup, err := utils.ParseDate(req.PickupDate)
	if err != nil {
		logger.ExitMethodWithError("rentalService.OpenRental", err)
		return nil, err
	}
	expected, err := utils.ParseDate(req.ExpectedReturnDate)
	if err != nil {
		logger.ExitMethodWithError("rentalService.OpenRental", err)
		return nil, err
	}
	if expected.Before(pickup) {
		logger.ExitMethodWithError("rentalService.OpenRental", domain.ErrReturnBeforePickup)
		return nil, domain.ErrReturnBeforePickup
	}

	today := utils.Truncate(s.now())
	rental := &domain.Rental{
		PickupDate:         pickup,
		ExpectedReturnDate: expected,
		ExpectedMileage:    req.ExpectedMileage,
		ExpectedPrice:      req.ExpectedPrice,
		EmployeeID:         req.EmployeeID,
		Plate:              req.Plate,
		CustomerCPF:        req.CustomerCPF,
		Accessories:        req.Accessories,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		car, err := repos.Cars.GetByPlate(ctx, req.Plate)
		if err != nil {
			return err
		}

		if car.MaintenanceID != nil {
			m, err := repos.Maintenance.GetByID(ctx, *car.MaintenanceID)
			switch {
			case errors.Is(err, domain.ErrMaintenanceNotFound):
				// Dangling reference, the car is not held by any maintenance.
			case err != nil:
				return fmt.Errorf("failed to load maintenance %d: %w", *car.MaintenanceID, err)
			case m.BlocksRental(today):
				return domain.ErrCarInMaintenance
			}
		}

		open, err := repos.Rentals.HasOpenRental(ctx, req.Plate)
		if err != nil {
			return fmt.Errorf("failed to check open rentals: %w", err)
		}
		if open {
			return domain.ErrCarAlreadyRented
		}

		rental.Category = car.Category
		rental.DailyRate = car.DailyRate
		if err := repos.Rentals.Create(ctx, rental); err != nil {
			return fmt.Errorf("failed to create rental: %w", err)
		}
		if err := repos.Cars.UpdateStatus(ctx, req.Plate, domain.CarStatusRented, nil); err != nil {
			return fmt.Errorf("failed to mark car as rented: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.OpenRental", err, "plate", req.Plate)
		return nil, err
	}

	logger.InfoContext(ctx, "Rental opened", "rentalID", rental.ID, "plate", rental.Plate, "cpf", rental.CustomerCPF)
	logger.ExitMethod("rentalService.OpenRental", "rentalID", rental.ID)
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}
