package tasks

import (
	"time"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const orphanAge = 24 * time.Hour

// detailTableForType maps each application type to the table its detail row
// lives in. TRANSFER_WITH_REACTIVATION checks the transfer table; its
// reactivation row is written immediately after in the same step, so a
// missing transfer row is the earliest orphan signal.
var detailTableForType = map[models.ApplicationType]string{
	models.RegisterApplication:                 "application_registrations",
	models.TransferApplication:                 "application_transfers",
	models.TransferWithReactivationApplication: "application_transfers",
	models.ReactivationApplication:             "application_reactivations",
	models.CorrectionOfEntryApplication:        "application_corrections",
	models.ReinstatementApplication:            "application_reinstatements",
}

// ReapOrphanedApplications deletes PENDING applications whose type-specific
// detail insert never landed. The submission path writes the parent row
// before the detail row without a transaction, so a mid-write failure leaves
// a parent with no detail. Anything older than orphanAge with no detail row
// cannot be completed and is soft deleted.
func ReapOrphanedApplications(db *gorm.DB) (int64, error) {
	cutoff := time.Now().Add(-orphanAge)
	var totalReaped int64

	for applicationType, detailTable := range detailTableForType {
		result := db.
			Where("application_type = ? AND status = ? AND submission_date < ?",
				applicationType, models.PendingApplication, cutoff).
			Where("id NOT IN (?)", db.Table(detailTable).Select("application_id")).
			Delete(&models.Application{})
		if result.Error != nil {
			return totalReaped, result.Error
		}
		if result.RowsAffected > 0 {
			config.Logger.Info("Reaped orphaned applications",
				zap.String("applicationType", string(applicationType)),
				zap.Int64("count", result.RowsAffected))
		}
		totalReaped += result.RowsAffected
	}

	return totalReaped, nil
}

// RunScheduledReaper runs the orphan reaper nightly at 2 AM.
func RunScheduledReaper(db *gorm.DB) {
	c := cron.New()

	c.AddFunc("0 2 * * *", func() {
		config.Logger.Info("Running scheduled orphan reaper...")

		reaped, err := ReapOrphanedApplications(db)
		if err != nil {
			config.Logger.Error("Orphan reaper failed", zap.Error(err))
			return
		}

		config.Logger.Info("Orphan reaper finished", zap.Int64("reaped", reaped))
	})

	c.Start()

	select {}
}
