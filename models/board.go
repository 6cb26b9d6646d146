package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board represents a named pipeline of columns
type Board struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	// Relationships
	Columns []Column `gorm:"foreignKey:BoardID" json:"columns,omitempty"`
}

// BeforeCreate hook to generate UUID
func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Board model
func (Board) TableName() string {
	return "boards"
}
