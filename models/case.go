package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case type constants
const (
	CaseTypeOrder    = "ORDER"
	CaseTypeQuote    = "QUOTE"
	CaseTypeSR       = "SR" // Service request
	CaseTypeQuestion = "QUESTION"
)

// Case represents a tracked customer work item on a board
type Case struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Placement. Position is per-column and sparse: moves overwrite it
	// without renumbering siblings, new cases append at max+1.
	BoardID  string `gorm:"type:uuid;not null;index" json:"board_id"`
	Board    Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	ColumnID string `gorm:"type:uuid;not null;index:idx_case_column_position" json:"column_id"`
	Column   Column `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Position int    `gorm:"not null;default:0;index:idx_case_column_position" json:"position"`

	// Identification
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CaseType    string `gorm:"not null;default:QUESTION" json:"case_type"`

	// EmailSlug is the token embedded in card-<slug>@<domain> reply
	// addresses. Set once at creation, never reassigned.
	EmailSlug string `gorm:"uniqueIndex;not null;size:16" json:"email_slug"`

	// Quote-only attributes, populated when CaseType is QUOTE
	QuoteID      *string `gorm:"uniqueIndex;size:20" json:"quote_id,omitempty"`
	ProductType  *string `gorm:"size:100" json:"product_type,omitempty"`
	Specs        *string `gorm:"type:text" json:"specs,omitempty"`
	CustomerName *string `gorm:"size:200" json:"customer_name,omitempty"`

	// Lifecycle timestamps, null until the transition occurs
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	DeletedAt  *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	// EscalatedToID points at this case's escalation copy. The inverse
	// relation is found by querying escalated_to_id = this case's id.
	EscalatedToID *string `gorm:"type:uuid;index" json:"escalated_to_id,omitempty"`
	EscalatedTo   *Case   `gorm:"foreignKey:EscalatedToID" json:"escalated_to,omitempty"`

	// Ownership
	CreatorID  *string `gorm:"type:uuid;index" json:"creator_id,omitempty"`
	Creator    *User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	AssigneeID *string `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	Assignee   *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`

	// Relationships
	Notes       []CaseNote       `gorm:"foreignKey:CaseID" json:"notes,omitempty"`
	Emails      []CaseEmail      `gorm:"foreignKey:CaseID" json:"emails,omitempty"`
	Attachments []CaseAttachment `gorm:"foreignKey:CaseID" json:"attachments,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsActive reports whether the case is neither closed, archived nor trashed
func (c *Case) IsActive() bool {
	return c.ClosedAt == nil && c.ArchivedAt == nil && c.DeletedAt == nil
}

// IsValidCaseType checks if the given case type is valid
func IsValidCaseType(caseType string) bool {
	switch caseType {
	case CaseTypeOrder, CaseTypeQuote, CaseTypeSR, CaseTypeQuestion:
		return true
	}
	return false
}

// InboundAddress builds the reply address correspondence is routed by
func (c *Case) InboundAddress(domain string) string {
	return "card-" + c.EmailSlug + "@" + domain
}
