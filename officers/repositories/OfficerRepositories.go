package repositories

import (
	"errors"
	"fmt"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	registration_repositories "voter-registration-backend/registrations/repositories"
	"voter-registration-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfficerRepository interface {
	GetByEmail(email string) (*models.Officer, error)
	UpdateLastLogin(officerID uuid.UUID) error
	GetApplicationByNumber(applicationNumber string) (*models.Application, error)
	UpsertAssignment(tx *gorm.DB, officerID, applicationID uuid.UUID, action models.OfficerAction) error

	UpdateApplicationStatus(officer *models.Officer, applicationNumber string, newStatus models.ApplicationStatus, disapprovalReason *string) (*models.Application, error)
	UpdateApplicationRemarks(applicationNumber string, remarks string) (*models.Application, error)
	UpdateErbHearingDate(applicationNumber string, hearingDate *utils.DateOnly) (*models.Application, error)

	ApproveWithVoterRecord(officer *models.Officer, applicationNumber, precinctNumber, voterID string) (*models.Application, error)
}

type officerRepository struct {
	DB         *gorm.DB
	Applicants registration_repositories.ApplicantRepository
}

func NewOfficerRepository(db *gorm.DB) OfficerRepository {
	return &officerRepository{
		DB:         db,
		Applicants: registration_repositories.NewApplicantRepository(db),
	}
}

func (r *officerRepository) GetByEmail(email string) (*models.Officer, error) {
	var officer models.Officer
	err := r.DB.Where("email = ? AND active = ?", email, true).First(&officer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "officer " + email}
		}
		return nil, fmt.Errorf("failed to fetch officer: %w", err)
	}
	return &officer, nil
}

func (r *officerRepository) UpdateLastLogin(officerID uuid.UUID) error {
	now := time.Now().In(utils.DateLocation)
	return r.DB.Model(&models.Officer{}).
		Where("id = ?", officerID).
		Update("last_login_at", &now).Error
}

func (r *officerRepository) GetApplicationByNumber(applicationNumber string) (*models.Application, error) {
	var application models.Application
	err := r.DB.Where("application_number = ?", applicationNumber).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "application " + applicationNumber}
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	return &application, nil
}

// UpsertAssignment records which officer last performed which action on an
// application. The (officer_id, application_id) pair is the conflict key, so
// repeating an action replaces the prior row instead of accumulating history.
func (r *officerRepository) UpsertAssignment(tx *gorm.DB, officerID, applicationID uuid.UUID, action models.OfficerAction) error {
	assignment := models.OfficerAssignment{
		OfficerID:     officerID,
		ApplicationID: applicationID,
		Action:        action,
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "officer_id"}, {Name: "application_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"action", "updated_at"}),
	}).Create(&assignment).Error
	if err != nil {
		config.Logger.Error("Failed to upsert officer assignment",
			zap.String("officerID", officerID.String()),
			zap.String("applicationID", applicationID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
		return fmt.Errorf("failed to upsert officer assignment: %w", err)
	}

	return nil
}
