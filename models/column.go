package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reserved lane names created on demand by the escalation workflow
const (
	ColumnNameEscalations = "Escalations"
	ColumnNameDeescalated = "De-escalated"
)

// Accent colors for the on-demand lanes
const (
	ColumnColorEscalations = "#e74c3c"
	ColumnColorDeescalated = "#95a5a6"
)

// Column represents a named stage within a board. Position values are
// unique per board and define display order ascending.
type Column struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BoardID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_board_column_name" json:"board_id"`
	Board   Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`

	Name     string `gorm:"not null;uniqueIndex:idx_board_column_name" json:"name"`
	Position int    `gorm:"not null;default:0" json:"position"`
	Color    string `gorm:"size:20" json:"color,omitempty"`
	IsFinal  bool   `gorm:"not null;default:false" json:"is_final"`
}

// BeforeCreate hook to generate UUID
func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Column model
func (Column) TableName() string {
	return "columns"
}
