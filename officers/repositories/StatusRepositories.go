package repositories

import (
	"strings"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/utils"

	"go.uber.org/zap"
)

// UpdateApplicationStatus transitions an application to newStatus and records
// the acting officer's assignment. Validation happens before any write:
// disapproval needs a non-empty reason, and every transition to a non-pending
// status needs a resolved officer. The assignment upsert after the status
// write is best effort; its failure is logged and the status change stands.
func (r *officerRepository) UpdateApplicationStatus(
	officer *models.Officer,
	applicationNumber string,
	newStatus models.ApplicationStatus,
	disapprovalReason *string,
) (*models.Application, error) {
	action, ok := models.ActionForStatus(newStatus)
	if !ok {
		return nil, apperrors.NewValidationError("unknown application status %q", newStatus)
	}

	var trimmedReason string
	if newStatus == models.DisapprovedApplication {
		if disapprovalReason != nil {
			trimmedReason = strings.TrimSpace(*disapprovalReason)
		}
		if trimmedReason == "" {
			return nil, apperrors.NewValidationError("a disapproval reason is required")
		}
	}

	if officer == nil && newStatus != models.PendingApplication {
		return nil, &apperrors.PermissionError{
			Err: apperrors.NewValidationError("an officer identity is required to set status %s", newStatus),
		}
	}

	application, err := r.GetApplicationByNumber(applicationNumber)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status": newStatus,
	}
	if newStatus == models.PendingApplication {
		updates["processing_date"] = nil
	} else {
		now := time.Now().In(utils.DateLocation)
		updates["processing_date"] = &now
	}
	if newStatus == models.DisapprovedApplication {
		updates["disapproval_reason"] = trimmedReason
	} else {
		updates["disapproval_reason"] = nil
	}

	if err := r.DB.Model(application).Updates(updates).Error; err != nil {
		return nil, &apperrors.PersistenceError{Record: "application status", Err: err}
	}

	if officer != nil {
		if err := r.UpsertAssignment(r.DB, officer.ID, application.ID, action); err != nil {
			config.Logger.Warn("Officer assignment not recorded for status update",
				zap.String("applicationNumber", applicationNumber),
				zap.String("action", string(action)),
				zap.Error(err))
		}
	}

	return application, nil
}

// UpdateApplicationRemarks trims the remarks and nulls them when empty.
func (r *officerRepository) UpdateApplicationRemarks(applicationNumber string, remarks string) (*models.Application, error) {
	application, err := r.GetApplicationByNumber(applicationNumber)
	if err != nil {
		return nil, err
	}

	trimmed := utils.TrimmedOrNil(remarks)
	if err := r.DB.Model(application).Update("remarks", trimmed).Error; err != nil {
		return nil, &apperrors.PersistenceError{Record: "application remarks", Err: err}
	}

	return application, nil
}

func (r *officerRepository) UpdateErbHearingDate(applicationNumber string, hearingDate *utils.DateOnly) (*models.Application, error) {
	application, err := r.GetApplicationByNumber(applicationNumber)
	if err != nil {
		return nil, err
	}

	if err := r.DB.Model(application).Update("erb_hearing_date", hearingDate).Error; err != nil {
		return nil, &apperrors.PersistenceError{Record: "ERB hearing date", Err: err}
	}

	return application, nil
}
