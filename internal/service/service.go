package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/settlement"
)

type RentalService interface {
	OpenRental(ctx context.Context, req OpenRentalRequest) (*domain.Rental, error)
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
}

// ReturnService closes rentals. A successful ReturnCar has written the
// payment, the return, every fine and discount and the new car status in a
// single transaction.
type ReturnService interface {
	ReturnCar(ctx context.Context, req ReturnRequest) (*ReturnResult, error)
}

type FleetService interface {
	ListCars(ctx context.Context, status string) ([]domain.Car, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ReleaseCompletedMaintenance(ctx context.Context) ([]string, error)
}

type ReportService interface {
	ListFinesByRental(ctx context.Context, rentalID int32) ([]domain.FineRecord, error)
	ListDiscountsByRental(ctx context.Context, rentalID int32) ([]domain.DiscountRecord, error)
	ListFinesByCustomer(ctx context.Context, cpf string) ([]domain.CustomerFineRecord, error)
	ProjectOverdueRentals(ctx context.Context) ([]OverdueProjection, error)
}

type EmailService interface {
	SendOverdueDigest(ctx context.Context, day time.Time, overdue []OverdueProjection) error
}

type OpenRentalRequest struct {
	Plate              string
	CustomerCPF        string
	EmployeeID         int32
	PickupDate         string
	ExpectedReturnDate string
	ExpectedMileage    *int32
	ExpectedPrice      decimal.NullDecimal
	Accessories        []string
}

type ReturnRequest struct {
	RentalID     int32
	CarCondition string
	FuelFull     bool
	// DamageValue is the raw amount typed at the counter. Unparseable or
	// negative input counts as no damage.
	DamageValue   string
	Mileage       *int32
	PaymentMethod string
}

type ReturnResult struct {
	settlement.Result
	RentalID      int32
	PaymentID     int32
	ReturnDate    time.Time
	MaintenanceID *int32
}

// OverdueProjection is an open rental past its expected return date with the
// late fee it would be charged if returned today.
type OverdueProjection struct {
	domain.OverdueRental
	DaysLate     int
	ProjectedFee decimal.Decimal
}
