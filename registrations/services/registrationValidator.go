package services

import (
	"strings"
	"time"
	"voter-registration-backend/apperrors"
	"voter-registration-backend/db/models"
	"voter-registration-backend/registrations/requests"
	"voter-registration-backend/utils"
)

func isValidApplicationType(applicationType string) bool {
	switch models.ApplicationType(applicationType) {
	case models.RegisterApplication, models.TransferApplication, models.TransferWithReactivationApplication,
		models.ReactivationApplication, models.CorrectionOfEntryApplication, models.ReinstatementApplication:
		return true
	default:
		return false
	}
}

func needsDeclaredAddress(applicationType string) bool {
	switch models.ApplicationType(applicationType) {
	case models.RegisterApplication, models.TransferApplication, models.TransferWithReactivationApplication:
		return true
	default:
		return false
	}
}

// ValidateSubmission checks the registration form before anything is stored
// or uploaded. It validates the shared biographic fields, then only the
// sections the submitted application type requires.
func ValidateSubmission(form *requests.SubmitApplicationRequest) error {
	var validationErrors []string

	if form.UserEmail == "" || !strings.Contains(form.UserEmail, "@") {
		validationErrors = append(validationErrors, "A valid email address is required")
	}

	if !isValidApplicationType(form.ApplicationType) {
		validationErrors = append(validationErrors, "Invalid application type")
	}

	if strings.TrimSpace(form.FirstName) == "" {
		validationErrors = append(validationErrors, "First name is required")
	}
	if strings.TrimSpace(form.LastName) == "" {
		validationErrors = append(validationErrors, "Last name is required")
	}
	if form.Sex == "" {
		validationErrors = append(validationErrors, "Sex is required")
	}
	if form.CivilStatus == "" {
		validationErrors = append(validationErrors, "Civil status is required")
	}
	if form.Citizenship == "" {
		validationErrors = append(validationErrors, "Citizenship is required")
	}
	if form.PhoneNumber == "" {
		validationErrors = append(validationErrors, "Phone number is required")
	}

	if form.DateOfBirth == "" {
		validationErrors = append(validationErrors, "Date of birth is required")
	} else if dateOfBirth, err := utils.ParseDateOnly(form.DateOfBirth); err != nil {
		validationErrors = append(validationErrors, "Date of birth must be in YYYY-MM-DD format")
	} else if time.Time(dateOfBirth).After(time.Now().In(utils.DateLocation)) {
		validationErrors = append(validationErrors, "Date of birth cannot be in the future")
	}

	if needsDeclaredAddress(form.ApplicationType) {
		if strings.TrimSpace(form.Barangay) == "" {
			validationErrors = append(validationErrors, "Barangay is required")
		}
		if strings.TrimSpace(form.City) == "" {
			validationErrors = append(validationErrors, "City is required")
		}
		if strings.TrimSpace(form.Province) == "" {
			validationErrors = append(validationErrors, "Province is required")
		}
		if form.YearsOfResidency < 0 || form.MonthsOfResidency < 0 || form.MonthsOfResidency > 11 {
			validationErrors = append(validationErrors, "Invalid residency duration")
		}
	}

	switch models.ApplicationType(form.ApplicationType) {
	case models.RegisterApplication:
		if form.RegistrationType == "" {
			validationErrors = append(validationErrors, "Registration type is required")
		}
	case models.TransferApplication, models.TransferWithReactivationApplication:
		if strings.TrimSpace(form.PreviousBarangay) == "" ||
			strings.TrimSpace(form.PreviousCity) == "" ||
			strings.TrimSpace(form.PreviousProvince) == "" {
			validationErrors = append(validationErrors, "Previous address is required for transfers")
		}
		if models.ApplicationType(form.ApplicationType) == models.TransferWithReactivationApplication &&
			form.ReasonForDeactivation == "" {
			validationErrors = append(validationErrors, "Reason for deactivation is required")
		}
	case models.ReactivationApplication:
		if form.ReasonForDeactivation == "" {
			validationErrors = append(validationErrors, "Reason for deactivation is required")
		}
	case models.CorrectionOfEntryApplication:
		if strings.TrimSpace(form.TargetField) == "" {
			validationErrors = append(validationErrors, "Target field is required")
		}
		if strings.TrimSpace(form.RequestedValue) == "" {
			validationErrors = append(validationErrors, "Requested value is required")
		}
	case models.ReinstatementApplication:
		if form.ReinstatementType == "" {
			validationErrors = append(validationErrors, "Reinstatement type is required")
		}
	}

	if form.IsPwd && (form.TypeOfDisability == nil || strings.TrimSpace(*form.TypeOfDisability) == "") {
		validationErrors = append(validationErrors, "Type of disability is required for PWD applicants")
	}

	if len(validationErrors) > 0 {
		return apperrors.NewValidationError("validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return nil
}
