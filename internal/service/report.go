package service

import (
	"context"
	"time"

	"carcompany-backend/internal/domain"
	"carcompany-backend/internal/repository"
	"carcompany-backend/internal/settlement"
	"carcompany-backend/internal/utils"
)

type reportService struct {
	reportRepo repository.ReportRepository
	calc       *settlement.Calculator
	now        func() time.Time
}

func NewReportService(reportRepo repository.ReportRepository, calc *settlement.Calculator, now func() time.Time) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		calc:       calc,
		now:        now,
	}
}

func (s *reportService) ListFinesByRental(ctx context.Context, rentalID int32) ([]domain.FineRecord, error) {
	return s.reportRepo.ListFinesByRental(ctx, rentalID)
}

func (s *reportService) ListDiscountsByRental(ctx context.Context, rentalID int32) ([]domain.DiscountRecord, error) {
	return s.reportRepo.ListDiscountsByRental(ctx, rentalID)
}

func (s *reportService) ListFinesByCustomer(ctx context.Context, cpf string) ([]domain.CustomerFineRecord, error) {
	return s.reportRepo.ListFinesByCustomer(ctx, cpf)
}

// ProjectOverdueRentals lists the rentals still out past their expected
// return date, each with the late fee it would pay if returned today.
func (s *reportService) ProjectOverdueRentals(ctx context.Context) ([]OverdueProjection, error) {
	today := utils.Truncate(s.now())
	overdue, err := s.reportRepo.ListOverdueRentals(ctx, today)
	if err != nil {
		return nil, err
	}

	out := make([]OverdueProjection, 0, len(overdue))
	for _, o := range overdue {
		fee, daysLate := s.calc.ProjectLateFee(o.ExpectedReturnDate, today, o.DailyRate)
		out = append(out, OverdueProjection{
			OverdueRental: o,
			DaysLate:      daysLate,
			ProjectedFee:  fee,
		})
	}
	return out, nil
}
