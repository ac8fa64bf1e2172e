package repositories

import (
	"errors"
	"fmt"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/db/models"
	"voter-registration-backend/registrations/requests"
	"voter-registration-backend/utils"

	"gorm.io/gorm"
)

type ApplicationReaderRepository interface {
	GetByApplicationNumber(applicationNumber string) (*requests.FlattenedApplication, error)
	GetFilteredApplications(filters map[string]string, paginationEnabled bool, limit, offset int) ([]models.Application, int64, error)
}

type applicationReaderRepository struct {
	DB *gorm.DB
}

func NewApplicationReaderRepository(db *gorm.DB) ApplicationReaderRepository {
	return &applicationReaderRepository{DB: db}
}

// GetByApplicationNumber reconstructs the flattened submission view from the
// normalized rows. Exactly one of the five detail relations exists for a
// well-formed application; each is normalized to present-or-absent before
// flattening. The concatenated house/street and composite parent name
// columns are re-split at the first space, which is a lossy, best-effort
// inverse of the write path: a multi-word house number cannot be recovered.
func (r *applicationReaderRepository) GetByApplicationNumber(applicationNumber string) (*requests.FlattenedApplication, error) {
	var application models.Application
	err := r.DB.
		Preload("Applicant").
		Preload("Applicant.SpecialSector").
		Preload("Registration").
		Preload("Transfer").
		Preload("Reactivation").
		Preload("Correction").
		Preload("Reinstatement").
		Preload("DeclaredAddress").
		Where("application_number = ?", applicationNumber).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "application " + applicationNumber}
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}

	return flattenApplication(&application), nil
}

func flattenApplication(application *models.Application) *requests.FlattenedApplication {
	applicant := application.Applicant

	flat := &requests.FlattenedApplication{
		ApplicationNumber: application.ApplicationNumber,
		ApplicationType:   string(application.ApplicationType),
		Status:            string(application.Status),
		SubmissionDate:    application.SubmissionDate.Format(time.RFC3339),
		DisapprovalReason: application.DisapprovalReason,
		Remarks:           application.Remarks,

		FirstName:    applicant.FirstName,
		LastName:     applicant.LastName,
		MiddleName:   applicant.MiddleName,
		Suffix:       applicant.Suffix,
		DateOfBirth:  applicant.DateOfBirth.Format("2006-01-02"),
		PlaceOfBirth: applicant.PlaceOfBirth,
		Sex:          applicant.Sex,
		CivilStatus:  applicant.CivilStatus,
		Citizenship:  applicant.Citizenship,
		Profession:   applicant.Profession,
		PhoneNumber:  applicant.PhoneNumber,

		GovtIdFrontURL: application.GovtIdFrontURL,
		GovtIdBackURL:  application.GovtIdBackURL,
		IdSelfieURL:    application.IdSelfieURL,
	}

	if application.ProcessingDate != nil {
		formatted := application.ProcessingDate.Format(time.RFC3339)
		flat.ProcessingDate = &formatted
	}
	if application.ErbHearingDate != nil {
		formatted := time.Time(*application.ErbHearingDate).Format("2006-01-02")
		flat.ErbHearingDate = &formatted
	}

	if applicant.FatherName != nil {
		flat.FatherFirstName, flat.FatherLastName = utils.SplitOnFirstSpace(*applicant.FatherName)
	}
	if applicant.MotherMaidenName != nil {
		flat.MotherFirstName, flat.MotherLastName = utils.SplitOnFirstSpace(*applicant.MotherMaidenName)
	}

	if address := application.DeclaredAddress; address != nil {
		flat.HouseNumber, flat.Street = utils.SplitOnFirstSpace(address.HouseNumberStreet)
		flat.Barangay = address.Barangay
		flat.City = address.City
		flat.Province = address.Province
		flat.ZipCode = address.ZipCode
		flat.YearsOfResidency = address.YearsOfResidency
		flat.MonthsOfResidency = address.MonthsOfResidency
	}

	if detail := application.Registration; detail != nil {
		flat.RegistrationType = detail.RegistrationType
		flat.AdultRegistrationDone = detail.AdultRegistrationDone
	}
	if detail := application.Transfer; detail != nil {
		flat.PreviousPrecinctNumber = detail.PreviousPrecinctNumber
		flat.PreviousBarangay = detail.PreviousBarangay
		flat.PreviousCity = detail.PreviousCity
		flat.PreviousProvince = detail.PreviousProvince
		flat.TransferReason = detail.TransferReason
	}
	if detail := application.Reactivation; detail != nil {
		flat.ReasonForDeactivation = detail.ReasonForDeactivation
	}
	if detail := application.Correction; detail != nil {
		flat.TargetField = detail.TargetField
		flat.CurrentValue = detail.CurrentValue
		flat.RequestedValue = detail.RequestedValue
	}
	if detail := application.Reinstatement; detail != nil {
		flat.ReinstatementType = detail.ReinstatementType
	}

	if sector := applicant.SpecialSector; sector != nil {
		flat.IsIlliterate = sector.IsIlliterate
		flat.IsIndigenousPerson = sector.IsIndigenousPerson
		flat.IsPwd = sector.IsPwd
		flat.IsSeniorCitizen = sector.IsSeniorCitizen
		flat.AssistorName = sector.AssistorName
		flat.TypeOfDisability = sector.TypeOfDisability
		flat.VoteOnGroundFloor = sector.VoteOnGroundFloor
	}

	return flat
}
