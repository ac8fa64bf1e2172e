package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Detail tables. Each is keyed by the application's internal id with a
// unique index, so an application carries at most one row of its own type.

// ApplicationRegistration holds the register-specific declarations.
type ApplicationRegistration struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`

	RegistrationType      string `gorm:"type:varchar(30)" json:"registration_type"` // KATIPUNAN_NG_KABATAAN or REGULAR
	AdultRegistrationDone bool   `gorm:"default:false" json:"adult_registration_done"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ApplicationTransfer records where the voter is transferring from.
type ApplicationTransfer struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`

	PreviousPrecinctNumber *string `json:"previous_precinct_number"`
	PreviousBarangay       string  `json:"previous_barangay"`
	PreviousCity           string  `json:"previous_city"`
	PreviousProvince       string  `json:"previous_province"`
	TransferReason         *string `gorm:"type:text" json:"transfer_reason"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ApplicationReactivation records why the registration was deactivated.
type ApplicationReactivation struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`

	ReasonForDeactivation string `gorm:"type:text;not null" json:"reason_for_deactivation"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ApplicationCorrection records a requested correction of entry.
type ApplicationCorrection struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`

	TargetField    string `gorm:"not null" json:"target_field"`
	CurrentValue   string `gorm:"not null" json:"current_value"`
	RequestedValue string `gorm:"not null" json:"requested_value"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ApplicationReinstatement records a reinstatement request.
type ApplicationReinstatement struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`

	ReinstatementType string `gorm:"not null" json:"reinstatement_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ApplicationDeclaredAddress is written for register and transfer type
// applications. House number and street are submitted separately but stored
// as one concatenated column; the reader re-splits them on the first space.
type ApplicationDeclaredAddress struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`

	HouseNumberStreet string  `gorm:"not null" json:"house_number_street"`
	Barangay          string  `gorm:"not null" json:"barangay"`
	City              string  `gorm:"not null" json:"city"`
	Province          string  `gorm:"not null" json:"province"`
	ZipCode           *string `json:"zip_code"`
	YearsOfResidency  int     `gorm:"default:0" json:"years_of_residency"`
	MonthsOfResidency int     `gorm:"default:0" json:"months_of_residency"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *ApplicationRegistration) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (t *ApplicationTransfer) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

func (r *ApplicationReactivation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (c *ApplicationCorrection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

func (r *ApplicationReinstatement) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (a *ApplicationDeclaredAddress) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
