package repository

import (
	"context"
	"time"

	"carcompany-backend/internal/domain"
)

type CarRepository interface {
	GetByPlate(ctx context.Context, plate string) (*domain.Car, error)
	List(ctx context.Context, status domain.CarStatus) ([]domain.Car, error)
	UpdateStatus(ctx context.Context, plate string, status domain.CarStatus, maintenanceID *int32) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) error
	GetByID(ctx context.Context, id int32) (*domain.Maintenance, error)
	// ReleaseCompleted puts back in service every car whose maintenance
	// finished on or before day and returns their plates.
	ReleaseCompleted(ctx context.Context, day time.Time) ([]string, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// GetOpenForUpdate loads a rental that has no return yet and locks its
	// row until the surrounding transaction ends.
	GetOpenForUpdate(ctx context.Context, id int32) (*domain.Rental, error)
	HasOpenRental(ctx context.Context, plate string) (bool, error)
	GetCustomerHistory(ctx context.Context, cpf string, excludeRentalID int32, recentLimit int) (*domain.CustomerHistory, error)
}

type SettlementRepository interface {
	CreatePayment(ctx context.Context, payment *domain.Payment) error
	CreateReturn(ctx context.Context, ret *domain.Return) error
	CreateFine(ctx context.Context, fine *domain.Fine) error
	CreateDiscount(ctx context.Context, discount *domain.Discount) error
}

type ReportRepository interface {
	ListFinesByRental(ctx context.Context, rentalID int32) ([]domain.FineRecord, error)
	ListDiscountsByRental(ctx context.Context, rentalID int32) ([]domain.DiscountRecord, error)
	ListFinesByCustomer(ctx context.Context, cpf string) ([]domain.CustomerFineRecord, error)
	ListOverdueRentals(ctx context.Context, day time.Time) ([]domain.OverdueRental, error)
}

// Repositories are bound to a single transaction.
type Repositories struct {
	Cars        CarRepository
	Maintenance MaintenanceRepository
	Rentals     RentalRepository
	Settlements SettlementRepository
}

// Transactor runs fn inside one database transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
