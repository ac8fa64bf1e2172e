package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UploadedFile is the audit row behind every stored attachment. The binary
// itself lives in the bucket store; this records where and for whom.
type UploadedFile struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`

	Bucket     string          `gorm:"not null;index" json:"bucket"`
	ObjectPath string          `gorm:"not null" json:"object_path"`
	FileType   string          `gorm:"not null" json:"file_type"`
	FileSize   decimal.Decimal `gorm:"type:decimal(15,0);not null" json:"file_size"`
	PublicURL  string          `gorm:"not null" json:"public_url"`

	UploadedBy string `gorm:"not null" json:"uploaded_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *UploadedFile) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
