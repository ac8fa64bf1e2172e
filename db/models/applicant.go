package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VotingStatus string

const (
	ActiveVoter       VotingStatus = "ACTIVE"
	DeactivatedVoter  VotingStatus = "DEACTIVATED"
	NotYetActiveVoter VotingStatus = "NOT_YET_ACTIVE"
)

// Applicant is the person-level record, one per registered identity. It is
// mutated on re-registration after disapproval and never deleted.
type Applicant struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`

	// Identity key. One applicant per authenticated account.
	UserEmail string `gorm:"unique;not null;index" json:"user_email"`

	FirstName  string  `gorm:"not null" json:"first_name"`
	LastName   string  `gorm:"not null" json:"last_name"`
	MiddleName *string `json:"middle_name"`
	Suffix     *string `json:"suffix"`

	DateOfBirth  time.Time `gorm:"not null" json:"date_of_birth"`
	PlaceOfBirth *string   `json:"place_of_birth"`
	Sex          string    `gorm:"type:varchar(10)" json:"sex"`
	CivilStatus  string    `gorm:"type:varchar(20)" json:"civil_status"`
	Citizenship  string    `json:"citizenship"`
	Profession   *string   `json:"profession"`
	PhoneNumber  string    `json:"phone_number"`

	// Parent names are submitted as first/last pairs but stored as single
	// composite columns, re-split on read.
	FatherName       *string `json:"father_name"`
	MotherMaidenName *string `json:"mother_maiden_name"`

	VotingStatus VotingStatus `gorm:"type:varchar(20);default:'NOT_YET_ACTIVE'" json:"voting_status"`

	// Relationships
	Applications  []Application           `gorm:"foreignKey:ApplicantID" json:"applications,omitempty"`
	SpecialSector *ApplicantSpecialSector `gorm:"foreignKey:ApplicantID" json:"special_sector,omitempty"`
	VoterRecord   *ApplicantVoterRecord   `gorm:"foreignKey:ApplicantID" json:"voter_record,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetFullName assembles the display name from its parts.
func (a *Applicant) GetFullName() string {
	parts := []string{a.FirstName}
	if a.MiddleName != nil && *a.MiddleName != "" {
		parts = append(parts, *a.MiddleName)
	}
	parts = append(parts, a.LastName)
	if a.Suffix != nil && *a.Suffix != "" {
		parts = append(parts, *a.Suffix)
	}
	return strings.Join(parts, " ")
}

// ApplicantSpecialSector holds special-sector declarations, at most one row
// per applicant. Re-submission overwrites in place.
type ApplicantSpecialSector struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"applicant_id"`

	IsIlliterate       bool    `gorm:"default:false" json:"is_illiterate"`
	IsIndigenousPerson bool    `gorm:"default:false" json:"is_indigenous_person"`
	IsPwd              bool    `gorm:"default:false" json:"is_pwd"`
	IsSeniorCitizen    bool    `gorm:"default:false" json:"is_senior_citizen"`
	AssistorName       *string `json:"assistor_name"`
	TypeOfDisability   *string `json:"type_of_disability"`
	VoteOnGroundFloor  bool    `gorm:"default:false" json:"vote_on_ground_floor"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ApplicantVoterRecord is created exactly once per applicant on approval.
type ApplicantVoterRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"applicant_id"`

	PrecinctNumber string `gorm:"not null" json:"precinct_number"`
	VoterID        string `gorm:"not null" json:"voter_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Applicant) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

func (s *ApplicantSpecialSector) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (v *ApplicantVoterRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
