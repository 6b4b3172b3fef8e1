package jobs

import (
	"context"

	"carcompany-backend/internal/logger"
)

// ReleaseCompletedMaintenance puts back in service the cars whose maintenance
// finished on or before today.
func (jr *JobRunner) ReleaseCompletedMaintenance() {
	jr.runWithRecovery("ReleaseCompletedMaintenance", func() {
		ctx := context.Background()

		plates, err := jr.services.Fleet.ReleaseCompletedMaintenance(ctx)
		if err != nil {
			logger.Error("Failed to release cars from maintenance", "error", err)
			return
		}
		logger.Info("Released cars from maintenance", "count", len(plates))
	})
}
