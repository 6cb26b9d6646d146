package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Email direction constants
const (
	EmailDirectionIn  = "in"
	EmailDirectionOut = "out"
)

// CaseEmail is a piece of correspondence attached to a case. Inbound
// rows are created by the email router; outbound rows by sending flows.
type CaseEmail struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"-"`

	Direction string `gorm:"not null;size:3" json:"direction"`

	FromAddress string `gorm:"not null" json:"from_address"`
	ToAddress   string `gorm:"type:text" json:"to_address"`
	CcAddress   string `gorm:"type:text" json:"cc_address"`
	Subject     string `gorm:"not null" json:"subject"`
	TextBody    string `gorm:"type:text" json:"text_body"`
	HTMLBody    string `gorm:"type:text" json:"html_body"`

	// Threading headers, when the relay provides them
	MessageID *string `gorm:"index:idx_case_email_message_id" json:"message_id,omitempty"`
	InReplyTo *string `json:"in_reply_to,omitempty"`

	// Relationships
	Attachments []CaseEmailAttachment `gorm:"foreignKey:CaseEmailID" json:"attachments,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *CaseEmail) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseEmail model
func (CaseEmail) TableName() string {
	return "case_emails"
}

// CaseEmailAttachment is metadata for a file delivered with an email
type CaseEmailAttachment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseEmailID string    `gorm:"type:uuid;not null;index" json:"case_email_id"`
	CaseEmail   CaseEmail `gorm:"foreignKey:CaseEmailID" json:"-"`

	FileName    string `gorm:"not null" json:"file_name"`
	MimeType    string `gorm:"size:100" json:"mime_type"`
	FileSize    int64  `json:"file_size"`
	StoragePath string `json:"storage_path"`
}

// BeforeCreate hook to generate UUID
func (a *CaseEmailAttachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseEmailAttachment model
func (CaseEmailAttachment) TableName() string {
	return "case_email_attachments"
}
