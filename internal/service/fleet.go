package service

import (
	"context"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/repository"
	"carcompany-backend/internal/utils"
)

type fleetService struct {
	carRepo         repository.CarRepository
	maintenanceRepo repository.MaintenanceRepository
	now             func() time.Time
}

func NewFleetService(carRepo repository.CarRepository, maintenanceRepo repository.MaintenanceRepository, now func() time.Time) FleetService {
	return &fleetService{
		carRepo:         carRepo,
		maintenanceRepo: maintenanceRepo,
		now:             now,
	}
}

// ListCars returns the fleet, optionally restricted to one status.
func (s *fleetService) ListCars(ctx context.Context, status string) ([]domain.Car, error) {
	st := domain.CarStatus(status)
	if st != "" && !st.Valid() {
		return nil, domain.ErrInvalidCarStatus
	}
	return s.carRepo.List(ctx, st)
}

func (s *fleetService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.carRepo.ListCategories(ctx)
}

// ReleaseCompletedMaintenance makes available again every car whose
// maintenance has a completion date up to today.
func (s *fleetService) ReleaseCompletedMaintenance(ctx context.Context) ([]string, error) {
	today := utils.Truncate(s.now())
	plates, err := s.maintenanceRepo.ReleaseCompleted(ctx, today)
	if err != nil {
		return nil, err
	}
	if len(plates) > 0 {
		logger.InfoContext(ctx, "Cars released from maintenance", "count", len(plates), "plates", plates)
	}
	return plates, nil
}
