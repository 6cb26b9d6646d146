package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseNote is an append-only free-text note on a case
type CaseNote struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`
	Case   Case   `gorm:"foreignKey:CaseID" json:"-"`

	AuthorID *string `gorm:"type:uuid" json:"author_id,omitempty"`
	Author   *User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`
}

// BeforeCreate hook to generate UUID
func (n *CaseNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseNote model
func (CaseNote) TableName() string {
	return "case_notes"
}
