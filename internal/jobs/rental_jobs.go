package jobs

import (
	"context"

	"carcompany-backend/internal/logger"
	"carcompany-backend/internal/utils"
)

// ReportOverdueRentals logs every rental past its expected return date with
// the late fee it would be charged today, and mails the list to the fleet
// desk.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		ctx := context.Background()

		overdue, err := jr.services.Reports.ProjectOverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		for _, o := range overdue {
			logger.Info("Rental overdue",
				"rentalID", o.RentalID,
				"plate", o.Plate,
				"cpf", o.CustomerCPF,
				"expectedReturn", utils.FormatDate(o.ExpectedReturnDate),
				"daysLate", o.DaysLate,
				"projectedFee", o.ProjectedFee.StringFixed(2),
			)
		}
		logger.Info("Overdue rentals found", "count", len(overdue), "policy", jr.config.Settlement.LateFeePolicy)

		if len(overdue) == 0 {
			return
		}
		if err := jr.services.Email.SendOverdueDigest(ctx, utils.Truncate(jr.now()), overdue); err != nil {
			logger.Error("Failed to send overdue digest", "error", err)
		}
	})
}
