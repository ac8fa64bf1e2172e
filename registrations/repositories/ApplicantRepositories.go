package repositories

import (
	"errors"
	"fmt"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/registrations/requests"
	"voter-registration-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ApplicantRepository interface {
	ResolveForRegistration(tx *gorm.DB, userEmail string, form *requests.SubmitApplicationRequest) (*models.Applicant, error)
	UpdateVotingStatus(tx *gorm.DB, applicantID uuid.UUID, status models.VotingStatus) error
	GetFilteredApplicants(limit, offset int) ([]models.Applicant, int64, error)
}

type applicantRepository struct {
	DB *gorm.DB
}

// NewApplicantRepository initializes a new applicant repository
func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{DB: db}
}

// ResolveForRegistration finds or creates the applicant record for a
// register-type submission. This is the locus of the registration
// eligibility policy:
//
//   - no existing applicant: create one from the form
//   - existing applicant with a pending or verified register application:
//     blocked
//   - existing applicant whose register applications are all disapproved:
//     the applicant row is updated in place with the resubmitted fields
//   - existing applicant with an approved register application: blocked
//
// The pre-check is check-then-act against the store, so two concurrent
// submissions for the same identity can race; the unique index on
// user_email is the backstop.
func (ar *applicantRepository) ResolveForRegistration(
	tx *gorm.DB,
	userEmail string,
	form *requests.SubmitApplicationRequest,
) (*models.Applicant, error) {
	var applicant models.Applicant
	err := tx.Where("user_email = ?", userEmail).First(&applicant).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up applicant: %w", err)
		}
		return ar.createApplicant(tx, userEmail, form)
	}

	var registerApps []models.Application
	if err := tx.
		Where("applicant_id = ? AND application_type = ?", applicant.ID, models.RegisterApplication).
		Find(&registerApps).Error; err != nil {
		return nil, fmt.Errorf("failed to look up prior register applications: %w", err)
	}

	var hasBlocking models.ApplicationStatus
	hasApproved := false
	hasDisapproved := false
	for _, app := range registerApps {
		switch app.Status {
		case models.PendingApplication, models.VerifiedApplication:
			if hasBlocking == "" {
				hasBlocking = app.Status
			}
		case models.ApprovedApplication:
			hasApproved = true
		case models.DisapprovedApplication:
			hasDisapproved = true
		}
	}

	switch {
	case hasBlocking != "":
		return nil, &apperrors.DuplicateSubmissionError{BlockingStatus: string(hasBlocking)}
	case hasApproved:
		return nil, &apperrors.AlreadyApprovedError{}
	case hasDisapproved:
		// Every register application was disapproved: the person is
		// re-registering, so refresh the applicant row with the newly
		// submitted fields instead of duplicating it.
		return ar.updateApplicant(tx, &applicant, form)
	default:
		// No register applications at all (e.g. only corrections on
		// file). Reuse the existing record unmodified.
		return &applicant, nil
	}
}

func (ar *applicantRepository) createApplicant(
	tx *gorm.DB,
	userEmail string,
	form *requests.SubmitApplicationRequest,
) (*models.Applicant, error) {
	dob, err := form.ParseDateOfBirth()
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date of birth: %v", err)
	}

	applicant := models.Applicant{
		UserEmail:        userEmail,
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		MiddleName:       form.MiddleName,
		Suffix:           form.Suffix,
		DateOfBirth:      time.Time(dob),
		PlaceOfBirth:     form.PlaceOfBirth,
		Sex:              form.Sex,
		CivilStatus:      form.CivilStatus,
		Citizenship:      form.Citizenship,
		Profession:       form.Profession,
		PhoneNumber:      form.PhoneNumber,
		FatherName:       utils.TrimmedOrNil(utils.JoinNonEmpty(form.FatherFirstName, form.FatherLastName)),
		MotherMaidenName: utils.TrimmedOrNil(utils.JoinNonEmpty(form.MotherFirstName, form.MotherLastName)),
		VotingStatus:     models.NotYetActiveVoter,
	}

	if err := tx.Create(&applicant).Error; err != nil {
		config.Logger.Error("Failed to create applicant",
			zap.String("userEmail", userEmail),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create applicant: %w", err)
	}

	config.Logger.Info("Created applicant",
		zap.String("applicantID", applicant.ID.String()),
		zap.String("userEmail", userEmail))

	return &applicant, nil
}

func (ar *applicantRepository) updateApplicant(
	tx *gorm.DB,
	applicant *models.Applicant,
	form *requests.SubmitApplicationRequest,
) (*models.Applicant, error) {
	dob, err := form.ParseDateOfBirth()
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date of birth: %v", err)
	}

	updates := map[string]interface{}{
		"first_name":         form.FirstName,
		"last_name":          form.LastName,
		"middle_name":        form.MiddleName,
		"suffix":             form.Suffix,
		"date_of_birth":      time.Time(dob),
		"place_of_birth":     form.PlaceOfBirth,
		"sex":                form.Sex,
		"civil_status":       form.CivilStatus,
		"citizenship":        form.Citizenship,
		"profession":         form.Profession,
		"phone_number":       form.PhoneNumber,
		"father_name":        utils.TrimmedOrNil(utils.JoinNonEmpty(form.FatherFirstName, form.FatherLastName)),
		"mother_maiden_name": utils.TrimmedOrNil(utils.JoinNonEmpty(form.MotherFirstName, form.MotherLastName)),
	}

	if err := tx.Model(applicant).Updates(updates).Error; err != nil {
		config.Logger.Error("Failed to update applicant for re-registration",
			zap.String("applicantID", applicant.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update applicant: %w", err)
	}

	config.Logger.Info("Updated applicant for re-registration",
		zap.String("applicantID", applicant.ID.String()))

	return applicant, nil
}

// UpdateVotingStatus flips the applicant's voting status flag. Used by the
// approval flow to activate the voter after the voter record is in place.
func (ar *applicantRepository) UpdateVotingStatus(tx *gorm.DB, applicantID uuid.UUID, status models.VotingStatus) error {
	return tx.Model(&models.Applicant{}).
		Where("id = ?", applicantID).
		Update("voting_status", status).Error
}

func (ar *applicantRepository) GetFilteredApplicants(limit, offset int) ([]models.Applicant, int64, error) {
	var applicants []models.Applicant
	var total int64

	if err := ar.DB.Model(&models.Applicant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := ar.DB.Order("updated_at DESC, created_at DESC").Limit(limit).Offset(offset).Find(&applicants).Error; err != nil {
		return nil, 0, err
	}

	return applicants, total, nil
}
