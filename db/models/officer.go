package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfficerPosition string

const (
	ElectionOfficerPosition   OfficerPosition = "ELECTION_OFFICER"
	BoardMemberPosition       OfficerPosition = "ERB_MEMBER"
	ElectionAssistantPosition OfficerPosition = "ELECTION_ASSISTANT"
)

// OfficerAction maps an application status to the action that produced it.
type OfficerAction string

const (
	SetPendingAction OfficerAction = "SET_PENDING"
	VerifyAction     OfficerAction = "VERIFY"
	ApproveAction    OfficerAction = "APPROVE"
	DisapproveAction OfficerAction = "DISAPPROVE"
)

// Officer represents election office staff with access to the review side.
type Officer struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName string          `gorm:"not null" json:"first_name"`
	LastName  string          `gorm:"not null" json:"last_name"`
	Email     string          `gorm:"unique;not null" json:"email"`
	Position  OfficerPosition `gorm:"type:varchar(30);not null" json:"position"`
	Password  string          `json:"-"`
	Active    bool            `gorm:"default:true" json:"active"`

	LastLoginAt *time.Time `json:"last_login_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// OfficerAssignment records which officer last performed a given action on
// an application. One row per (officer, application); re-action upserts in
// place, so this is not a full audit trail.
type OfficerAssignment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;" json:"id"`
	OfficerID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_officer_application" json:"officer_id"`
	ApplicationID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_officer_application" json:"application_id"`
	Action        OfficerAction `gorm:"type:varchar(20);not null" json:"action"`

	Officer Officer `gorm:"foreignKey:OfficerID" json:"officer,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ActionForStatus returns the assignment action recorded for a status
// transition.
func ActionForStatus(status ApplicationStatus) (OfficerAction, bool) {
	switch status {
	case PendingApplication:
		return SetPendingAction, true
	case VerifiedApplication:
		return VerifyAction, true
	case ApprovedApplication:
		return ApproveAction, true
	case DisapprovedApplication:
		return DisapproveAction, true
	}
	return "", false
}

func (o *Officer) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

func (oa *OfficerAssignment) BeforeCreate(tx *gorm.DB) (err error) {
	if oa.ID == uuid.Nil {
		oa.ID = uuid.New()
	}
	return
}
