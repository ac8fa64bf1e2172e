package repositories

import (
	"strings"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// ApproveWithVoterRecord runs the approval sequence: mark the application
// approved, record the officer's approve assignment, upsert the applicant's
// voter record, then activate the applicant's voting status. The steps are
// plain sequential writes with manual compensation. A voter-record failure
// reverts the application status to VERIFIED and clears the processing date
// but leaves the assignment row in place; a voting-status failure is logged
// only and the approval still succeeds. Voter-record creation is the
// approval-critical step; status flag propagation is best effort.
func (r *officerRepository) ApproveWithVoterRecord(
	officer *models.Officer,
	applicationNumber, precinctNumber, voterID string,
) (*models.Application, error) {
	if officer == nil {
		return nil, &apperrors.PermissionError{
			Err: apperrors.NewValidationError("an officer identity is required to approve an application"),
		}
	}

	precinctNumber = strings.TrimSpace(precinctNumber)
	voterID = strings.TrimSpace(voterID)
	if precinctNumber == "" || voterID == "" {
		return nil, apperrors.NewValidationError("precinct number and voter ID are required")
	}

	application, err := r.GetApplicationByNumber(applicationNumber)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(utils.DateLocation)
	approvalUpdates := map[string]interface{}{
		"status":             models.ApprovedApplication,
		"processing_date":    &now,
		"disapproval_reason": nil,
	}
	if err := r.DB.Model(application).Updates(approvalUpdates).Error; err != nil {
		return nil, &apperrors.PersistenceError{Record: "application status", Err: err}
	}

	if err := r.UpsertAssignment(r.DB, officer.ID, application.ID, models.ApproveAction); err != nil {
		config.Logger.Warn("Officer assignment not recorded for approval",
			zap.String("applicationNumber", applicationNumber),
			zap.Error(err))
	}

	voterRecord := models.ApplicantVoterRecord{
		ApplicantID:    application.ApplicantID,
		PrecinctNumber: precinctNumber,
		VoterID:        voterID,
	}
	err = r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "applicant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"precinct_number", "voter_id", "updated_at"}),
	}).Create(&voterRecord).Error
	if err != nil {
		r.revertApproval(application)
		return nil, &apperrors.PersistenceError{Record: "voter record", Err: err}
	}

	if err := r.Applicants.UpdateVotingStatus(r.DB, application.ApplicantID, models.ActiveVoter); err != nil {
		config.Logger.Warn("Voting status not activated after approval",
			zap.String("applicationNumber", applicationNumber),
			zap.String("applicantID", application.ApplicantID.String()),
			zap.Error(err))
	}

	return application, nil
}

// revertApproval undoes the status change after a failed voter-record write.
// The assignment row from the prior step is intentionally left behind.
func (r *officerRepository) revertApproval(application *models.Application) {
	revert := map[string]interface{}{
		"status":          models.VerifiedApplication,
		"processing_date": nil,
	}
	if err := r.DB.Model(application).Updates(revert).Error; err != nil {
		config.Logger.Error("Failed to revert application status after voter record failure",
			zap.String("applicationNumber", application.ApplicationNumber),
			zap.Error(err))
	}
}
