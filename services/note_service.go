package services

import (
	"fmt"

	"case_flow_app_go/models"

	"gorm.io/gorm"
)

// AddCaseNote appends a note to a case. Notes are immutable once created.
func AddCaseNote(db *gorm.DB, caseID string, authorID *string, content string) (*models.CaseNote, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: note content is required", ErrBadRequest)
	}

	var c models.Case
	if err := db.First(&c, "id = ?", caseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: case %q", ErrNotFound, caseID)
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}

	note := &models.CaseNote{
		CaseID:   c.ID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// ListCaseNotes returns a case's notes oldest first
func ListCaseNotes(db *gorm.DB, caseID string) ([]models.CaseNote, error) {
	var notes []models.CaseNote
	err := db.
		Preload("Author").
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}
