package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseAttachment is a file attached directly to a case, as opposed to
// one that arrived with an email
type CaseAttachment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"-"`

	UploadedByID *string `gorm:"type:uuid" json:"uploaded_by_id,omitempty"`
	UploadedBy   *User   `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`

	FileName    string `gorm:"not null" json:"file_name"`
	MimeType    string `gorm:"size:100" json:"mime_type"`
	FileSize    int64  `json:"file_size"`
	StoragePath string `json:"storage_path"`
}

// BeforeCreate hook to generate UUID
func (a *CaseAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseAttachment model
func (CaseAttachment) TableName() string {
	return "case_attachments"
}
