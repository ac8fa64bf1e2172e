package models

import (
	"fmt"
	"time"
	"voter-registration-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApplicationStatus defines the current state of an application. The values
// are mutually exclusive; there is no further state machine behind them.
type ApplicationStatus string

const (
	PendingApplication     ApplicationStatus = "PENDING"
	VerifiedApplication    ApplicationStatus = "VERIFIED"
	ApprovedApplication    ApplicationStatus = "APPROVED"
	DisapprovedApplication ApplicationStatus = "DISAPPROVED"
)

type ApplicationType string

const (
	RegisterApplication                 ApplicationType = "REGISTER"
	TransferApplication                 ApplicationType = "TRANSFER"
	TransferWithReactivationApplication ApplicationType = "TRANSFER_WITH_REACTIVATION"
	ReactivationApplication             ApplicationType = "REACTIVATION"
	CorrectionOfEntryApplication        ApplicationType = "CORRECTION_OF_ENTRY"
	ReinstatementApplication            ApplicationType = "REINSTATEMENT"
)

// Application is one submitted request. The ApplicationNumber is the only
// identifier exposed past the API boundary; the uuid stays internal.
type Application struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicationNumber string    `gorm:"unique;not null;index" json:"application_number"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index" json:"applicant_id"`

	ApplicationType ApplicationType   `gorm:"type:varchar(30);not null" json:"application_type"`
	Status          ApplicationStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	SubmissionDate time.Time  `gorm:"not null" json:"submission_date"`
	ProcessingDate *time.Time `json:"processing_date"`

	DisapprovalReason *string         `json:"disapproval_reason"`
	ErbHearingDate    *utils.DateOnly `gorm:"type:date" json:"erb_hearing_date"`
	Remarks           *string         `gorm:"type:text" json:"remarks"`

	// Public URLs of the stored ID photos.
	GovtIdFrontURL *string `json:"govt_id_front_url"`
	GovtIdBackURL  *string `json:"govt_id_back_url"`
	IdSelfieURL    *string `json:"id_selfie_url"`

	// Raw submitted form, kept verbatim for audit and dispute handling.
	FormSnapshot datatypes.JSON `json:"form_snapshot,omitempty"`

	// Relationships; each detail relation is 0-or-1 per application.
	Applicant       Applicant                   `gorm:"foreignKey:ApplicantID" json:"applicant"`
	Registration    *ApplicationRegistration    `gorm:"foreignKey:ApplicationID" json:"registration,omitempty"`
	Transfer        *ApplicationTransfer        `gorm:"foreignKey:ApplicationID" json:"transfer,omitempty"`
	Reactivation    *ApplicationReactivation    `gorm:"foreignKey:ApplicationID" json:"reactivation,omitempty"`
	Correction      *ApplicationCorrection      `gorm:"foreignKey:ApplicationID" json:"correction,omitempty"`
	Reinstatement   *ApplicationReinstatement   `gorm:"foreignKey:ApplicationID" json:"reinstatement,omitempty"`
	DeclaredAddress *ApplicationDeclaredAddress `gorm:"foreignKey:ApplicationID" json:"declared_address,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ApplicationNumber == "" {
		a.ApplicationNumber = NewApplicationNumber()
	}
	return
}

// NewApplicationNumber produces the public-facing identifier, e.g.
// VR-2026-1A2B3C4D. It is opaque and carries no ordering information.
func NewApplicationNumber() string {
	id := uuid.New()
	return fmt.Sprintf("VR-%d-%08X", time.Now().Year(), id.ID())
}
