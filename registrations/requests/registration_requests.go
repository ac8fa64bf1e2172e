package requests

import "voter-registration-backend/utils"

// SubmitApplicationRequest is the normalized registration form. One request
// carries the fields for every application type; the writer only persists
// the sections relevant to the submitted type.
type SubmitApplicationRequest struct {
	UserEmail       string `json:"user_email" form:"user_email"`
	ApplicationType string `json:"application_type" form:"application_type"`

	// Biographic fields
	FirstName    string  `json:"first_name" form:"first_name"`
	LastName     string  `json:"last_name" form:"last_name"`
	MiddleName   *string `json:"middle_name" form:"middle_name"`
	Suffix       *string `json:"suffix" form:"suffix"`
	DateOfBirth  string  `json:"date_of_birth" form:"date_of_birth"` // YYYY-MM-DD
	PlaceOfBirth *string `json:"place_of_birth" form:"place_of_birth"`
	Sex          string  `json:"sex" form:"sex"`
	CivilStatus  string  `json:"civil_status" form:"civil_status"`
	Citizenship  string  `json:"citizenship" form:"citizenship"`
	Profession   *string `json:"profession" form:"profession"`
	PhoneNumber  string  `json:"phone_number" form:"phone_number"`

	// Parent names, submitted as separate first/last pairs.
	FatherFirstName string `json:"father_first_name" form:"father_first_name"`
	FatherLastName  string `json:"father_last_name" form:"father_last_name"`
	MotherFirstName string `json:"mother_first_name" form:"mother_first_name"`
	MotherLastName  string `json:"mother_last_name" form:"mother_last_name"`

	// Declared address (register and transfer types)
	HouseNumber       string  `json:"house_number" form:"house_number"`
	Street            string  `json:"street" form:"street"`
	Barangay          string  `json:"barangay" form:"barangay"`
	City              string  `json:"city" form:"city"`
	Province          string  `json:"province" form:"province"`
	ZipCode           *string `json:"zip_code" form:"zip_code"`
	YearsOfResidency  int     `json:"years_of_residency" form:"years_of_residency"`
	MonthsOfResidency int     `json:"months_of_residency" form:"months_of_residency"`

	// Register details
	RegistrationType      string `json:"registration_type" form:"registration_type"`
	AdultRegistrationDone bool   `json:"adult_registration_done" form:"adult_registration_done"`

	// Transfer details
	PreviousPrecinctNumber *string `json:"previous_precinct_number" form:"previous_precinct_number"`
	PreviousBarangay       string  `json:"previous_barangay" form:"previous_barangay"`
	PreviousCity           string  `json:"previous_city" form:"previous_city"`
	PreviousProvince       string  `json:"previous_province" form:"previous_province"`
	TransferReason         *string `json:"transfer_reason" form:"transfer_reason"`

	// Reactivation details
	ReasonForDeactivation string `json:"reason_for_deactivation" form:"reason_for_deactivation"`

	// Correction of entry details
	TargetField    string `json:"target_field" form:"target_field"`
	CurrentValue   string `json:"current_value" form:"current_value"`
	RequestedValue string `json:"requested_value" form:"requested_value"`

	// Reinstatement details
	ReinstatementType string `json:"reinstatement_type" form:"reinstatement_type"`

	// Special sector declarations
	IsIlliterate       bool    `json:"is_illiterate" form:"is_illiterate"`
	IsIndigenousPerson bool    `json:"is_indigenous_person" form:"is_indigenous_person"`
	IsPwd              bool    `json:"is_pwd" form:"is_pwd"`
	IsSeniorCitizen    bool    `json:"is_senior_citizen" form:"is_senior_citizen"`
	AssistorName       *string `json:"assistor_name" form:"assistor_name"`
	TypeOfDisability   *string `json:"type_of_disability" form:"type_of_disability"`
	VoteOnGroundFloor  bool    `json:"vote_on_ground_floor" form:"vote_on_ground_floor"`
}

// HasSpecialSector reports whether any special-sector flag or field was
// submitted; only then is the special-sector row written.
func (r *SubmitApplicationRequest) HasSpecialSector() bool {
	return r.IsIlliterate || r.IsIndigenousPerson || r.IsPwd || r.IsSeniorCitizen ||
		r.VoteOnGroundFloor ||
		(r.AssistorName != nil && *r.AssistorName != "") ||
		(r.TypeOfDisability != nil && *r.TypeOfDisability != "")
}

// FlattenedApplication is the reader's output: the normalized relational
// representation collapsed back into the original submission shape.
type FlattenedApplication struct {
	ApplicationNumber string  `json:"application_number"`
	ApplicationType   string  `json:"application_type"`
	Status            string  `json:"status"`
	SubmissionDate    string  `json:"submission_date"`
	ProcessingDate    *string `json:"processing_date"`
	DisapprovalReason *string `json:"disapproval_reason"`
	ErbHearingDate    *string `json:"erb_hearing_date"`
	Remarks           *string `json:"remarks"`

	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	MiddleName   *string `json:"middle_name"`
	Suffix       *string `json:"suffix"`
	DateOfBirth  string  `json:"date_of_birth"`
	PlaceOfBirth *string `json:"place_of_birth"`
	Sex          string  `json:"sex"`
	CivilStatus  string  `json:"civil_status"`
	Citizenship  string  `json:"citizenship"`
	Profession   *string `json:"profession"`
	PhoneNumber  string  `json:"phone_number"`

	FatherFirstName string `json:"father_first_name"`
	FatherLastName  string `json:"father_last_name"`
	MotherFirstName string `json:"mother_first_name"`
	MotherLastName  string `json:"mother_last_name"`

	HouseNumber       string  `json:"house_number"`
	Street            string  `json:"street"`
	Barangay          string  `json:"barangay"`
	City              string  `json:"city"`
	Province          string  `json:"province"`
	ZipCode           *string `json:"zip_code"`
	YearsOfResidency  int     `json:"years_of_residency"`
	MonthsOfResidency int     `json:"months_of_residency"`

	RegistrationType      string `json:"registration_type,omitempty"`
	AdultRegistrationDone bool   `json:"adult_registration_done,omitempty"`

	PreviousPrecinctNumber *string `json:"previous_precinct_number,omitempty"`
	PreviousBarangay       string  `json:"previous_barangay,omitempty"`
	PreviousCity           string  `json:"previous_city,omitempty"`
	PreviousProvince       string  `json:"previous_province,omitempty"`
	TransferReason         *string `json:"transfer_reason,omitempty"`

	ReasonForDeactivation string `json:"reason_for_deactivation,omitempty"`

	TargetField    string `json:"target_field,omitempty"`
	CurrentValue   string `json:"current_value,omitempty"`
	RequestedValue string `json:"requested_value,omitempty"`

	ReinstatementType string `json:"reinstatement_type,omitempty"`

	IsIlliterate       bool    `json:"is_illiterate"`
	IsIndigenousPerson bool    `json:"is_indigenous_person"`
	IsPwd              bool    `json:"is_pwd"`
	IsSeniorCitizen    bool    `json:"is_senior_citizen"`
	AssistorName       *string `json:"assistor_name,omitempty"`
	TypeOfDisability   *string `json:"type_of_disability,omitempty"`
	VoteOnGroundFloor  bool    `json:"vote_on_ground_floor"`

	GovtIdFrontURL *string `json:"govt_id_front_url"`
	GovtIdBackURL  *string `json:"govt_id_back_url"`
	IdSelfieURL    *string `json:"id_selfie_url"`
}

// ParseDateOfBirth converts the submitted date string.
func (r *SubmitApplicationRequest) ParseDateOfBirth() (utils.DateOnly, error) {
	return utils.ParseDateOnly(r.DateOfBirth)
}
