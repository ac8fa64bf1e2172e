package repositories

import (
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/config"
	"voter-registration-backend/db/models"
	"voter-registration-backend/registrations/requests"
	"voter-registration-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IdPhotoURLs carries the public references of the already-stored ID photos.
type IdPhotoURLs struct {
	GovtIdFront string
	GovtIdBack  string
	IdSelfie    string
}

type ApplicationWriterRepository interface {
	CreateApplication(tx *gorm.DB, applicantID uuid.UUID, form *requests.SubmitApplicationRequest, photos IdPhotoURLs, snapshot datatypes.JSON) (string, error)
}

type applicationWriterRepository struct {
	DB *gorm.DB
}

func NewApplicationWriterRepository(db *gorm.DB) ApplicationWriterRepository {
	return &applicationWriterRepository{DB: db}
}

// CreateApplication performs the ordered multi-table write for one
// submission: optional special-sector upsert, parent application insert,
// type-specific detail insert, conditional declared-address insert. The
// steps run as plain writes, not inside a database transaction: a failure
// aborts the remainder but does NOT roll back rows already written, so a
// detail or address failure leaves a committed parent behind. The nightly
// reaper handles those orphans.
func (r *applicationWriterRepository) CreateApplication(
	tx *gorm.DB,
	applicantID uuid.UUID,
	form *requests.SubmitApplicationRequest,
	photos IdPhotoURLs,
	snapshot datatypes.JSON,
) (string, error) {
	if form.HasSpecialSector() {
		if err := r.upsertSpecialSector(tx, applicantID, form); err != nil {
			return "", &apperrors.PersistenceError{Record: "special sector", Err: err}
		}
	}

	application := models.Application{
		ApplicantID:     applicantID,
		ApplicationType: models.ApplicationType(form.ApplicationType),
		Status:          models.PendingApplication,
		SubmissionDate:  time.Now().In(utils.DateLocation),
		GovtIdFrontURL:  utils.TrimmedOrNil(photos.GovtIdFront),
		GovtIdBackURL:   utils.TrimmedOrNil(photos.GovtIdBack),
		IdSelfieURL:     utils.TrimmedOrNil(photos.IdSelfie),
		FormSnapshot:    snapshot,
	}
	if err := tx.Create(&application).Error; err != nil {
		return "", &apperrors.PersistenceError{Record: "application", Err: err}
	}

	config.Logger.Info("Created application",
		zap.String("applicationNumber", application.ApplicationNumber),
		zap.String("applicationType", form.ApplicationType),
		zap.String("applicantID", applicantID.String()))

	if err := r.insertDetailRow(tx, application.ID, form); err != nil {
		return "", err
	}

	if needsDeclaredAddress(application.ApplicationType) {
		address := models.ApplicationDeclaredAddress{
			ApplicationID:     application.ID,
			HouseNumberStreet: utils.JoinNonEmpty(form.HouseNumber, form.Street),
			Barangay:          form.Barangay,
			City:              form.City,
			Province:          form.Province,
			ZipCode:           form.ZipCode,
			YearsOfResidency:  form.YearsOfResidency,
			MonthsOfResidency: form.MonthsOfResidency,
		}
		if err := tx.Create(&address).Error; err != nil {
			return "", &apperrors.PersistenceError{Record: "declared address", Err: err}
		}
	}

	return application.ApplicationNumber, nil
}

func (r *applicationWriterRepository) upsertSpecialSector(
	tx *gorm.DB,
	applicantID uuid.UUID,
	form *requests.SubmitApplicationRequest,
) error {
	sector := models.ApplicantSpecialSector{
		ApplicantID:        applicantID,
		IsIlliterate:       form.IsIlliterate,
		IsIndigenousPerson: form.IsIndigenousPerson,
		IsPwd:              form.IsPwd,
		IsSeniorCitizen:    form.IsSeniorCitizen,
		AssistorName:       form.AssistorName,
		TypeOfDisability:   form.TypeOfDisability,
		VoteOnGroundFloor:  form.VoteOnGroundFloor,
	}

	// One row per applicant; a resubmission overwrites the prior values.
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "applicant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_illiterate", "is_indigenous_person", "is_pwd",
			"is_senior_citizen", "assistor_name", "type_of_disability",
			"vote_on_ground_floor", "updated_at",
		}),
	}).Create(&sector).Error
}

func (r *applicationWriterRepository) insertDetailRow(
	tx *gorm.DB,
	applicationID uuid.UUID,
	form *requests.SubmitApplicationRequest,
) error {
	switch models.ApplicationType(form.ApplicationType) {
	case models.RegisterApplication:
		detail := models.ApplicationRegistration{
			ApplicationID:         applicationID,
			RegistrationType:      form.RegistrationType,
			AdultRegistrationDone: form.AdultRegistrationDone,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return &apperrors.PersistenceError{Record: "registration details", Err: err}
		}

	case models.TransferApplication, models.TransferWithReactivationApplication:
		detail := models.ApplicationTransfer{
			ApplicationID:          applicationID,
			PreviousPrecinctNumber: form.PreviousPrecinctNumber,
			PreviousBarangay:       form.PreviousBarangay,
			PreviousCity:           form.PreviousCity,
			PreviousProvince:       form.PreviousProvince,
			TransferReason:         form.TransferReason,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return &apperrors.PersistenceError{Record: "transfer details", Err: err}
		}
		if models.ApplicationType(form.ApplicationType) == models.TransferWithReactivationApplication {
			reactivation := models.ApplicationReactivation{
				ApplicationID:         applicationID,
				ReasonForDeactivation: form.ReasonForDeactivation,
			}
			if err := tx.Create(&reactivation).Error; err != nil {
				return &apperrors.PersistenceError{Record: "reactivation details", Err: err}
			}
		}

	case models.ReactivationApplication:
		detail := models.ApplicationReactivation{
			ApplicationID:         applicationID,
			ReasonForDeactivation: form.ReasonForDeactivation,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return &apperrors.PersistenceError{Record: "reactivation details", Err: err}
		}

	case models.CorrectionOfEntryApplication:
		detail := models.ApplicationCorrection{
			ApplicationID:  applicationID,
			TargetField:    form.TargetField,
			CurrentValue:   form.CurrentValue,
			RequestedValue: form.RequestedValue,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return &apperrors.PersistenceError{Record: "correction details", Err: err}
		}

	case models.ReinstatementApplication:
		detail := models.ApplicationReinstatement{
			ApplicationID:     applicationID,
			ReinstatementType: form.ReinstatementType,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return &apperrors.PersistenceError{Record: "reinstatement details", Err: err}
		}

	default:
		// Unsupported type: no detail row. The parent still stands.
		config.Logger.Warn("No detail row for application type",
			zap.String("applicationType", form.ApplicationType))
	}

	return nil
}

func needsDeclaredAddress(t models.ApplicationType) bool {
	switch t {
	case models.RegisterApplication, models.TransferApplication, models.TransferWithReactivationApplication:
		return true
	}
	return false
}
