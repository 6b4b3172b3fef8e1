package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/repository"
)

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) GetByPlate(ctx context.Context, plate string) (*domain.Car, error) {
	args := m.Called(ctx, plate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) List(ctx context.Context, status domain.CarStatus) ([]domain.Car, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) UpdateStatus(ctx context.Context, plate string, status domain.CarStatus, maintenanceID *int32) error {
	args := m.Called(ctx, plate, status, maintenanceID)
	return args.Error(0)
}
func (m *MockCarRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// MockMaintenanceRepo
type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) Create(ctx context.Context, mt *domain.Maintenance) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}
func (m *MockMaintenanceRepo) GetByID(ctx context.Context, id int32) (*domain.Maintenance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Maintenance), args.Error(1)
}
func (m *MockMaintenanceRepo) ReleaseCompleted(ctx context.Context, day time.Time) ([]string, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetOpenForUpdate(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) HasOpenRental(ctx context.Context, plate string) (bool, error) {
	args := m.Called(ctx, plate)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) GetCustomerHistory(ctx context.Context, cpf string, excludeRentalID int32, recentLimit int) (*domain.CustomerHistory, error) {
	args := m.Called(ctx, cpf, excludeRentalID, recentLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerHistory), args.Error(1)
}

// MockSettlementRepo
type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockSettlementRepo) CreateReturn(ctx context.Context, ret *domain.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}
func (m *MockSettlementRepo) CreateFine(ctx context.Context, fine *domain.Fine) error {
	args := m.Called(ctx, fine)
	return args.Error(0)
}
func (m *MockSettlementRepo) CreateDiscount(ctx context.Context, discount *domain.Discount) error {
	args := m.Called(ctx, discount)
	return args.Error(0)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) ListFinesByRental(ctx context.Context, rentalID int32) ([]domain.FineRecord, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FineRecord), args.Error(1)
}
func (m *MockReportRepo) ListDiscountsByRental(ctx context.Context, rentalID int32) ([]domain.DiscountRecord, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountRecord), args.Error(1)
}
func (m *MockReportRepo) ListFinesByCustomer(ctx context.Context, cpf string) ([]domain.CustomerFineRecord, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerFineRecord), args.Error(1)
}
func (m *MockReportRepo) ListOverdueRentals(ctx context.Context, day time.Time) ([]domain.OverdueRental, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueRental), args.Error(1)
}

// fakeTx runs fn directly against the mock repositories and records how
// each transaction ended.
type fakeTx struct {
	repos     repository.Repositories
	commits   int
	rollbacks int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	if err := fn(ctx, f.repos); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type mockRepos struct {
	cars        *MockCarRepo
	maintenance *MockMaintenanceRepo
	rentals     *MockRentalRepo
	settlements *MockSettlementRepo
	tx          *fakeTx
}

func newMockRepos() *mockRepos {
	r := &mockRepos{
		cars:        new(MockCarRepo),
		maintenance: new(MockMaintenanceRepo),
		rentals:     new(MockRentalRepo),
		settlements: new(MockSettlementRepo),
	}
	r.tx = &fakeTx{repos: repository.Repositories{
		Cars:        r.cars,
		Maintenance: r.maintenance,
		Rentals:     r.rentals,
		Settlements: r.settlements,
	}}
	return r
}

var testNow = time.Date(2024, time.June, 20, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func int32Ptr(v int32) *int32 { return &v }
