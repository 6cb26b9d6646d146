package services

import (
	"fmt"
	"time"

	"case_flow_app_go/models"

	"gorm.io/gorm"
)

// SoftDeleteCase marks a case as trashed, or removes it outright when
// permanent is true.
//
// Soft-deleting an original that has an active escalation copy takes the
// copy with it, in the same transaction. The converse does not hold:
// deleting a copy leaves the original and its link untouched, so the
// lineage survives the copy's trip through the trash.
func SoftDeleteCase(db *gorm.DB, caseID string, permanent bool) error {
	if permanent {
		return hardDeleteCase(db, caseID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.First(&c, "id = ?", caseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: case %q", ErrNotFound, caseID)
			}
			return fmt.Errorf("failed to load case: %w", err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&c).Update("deleted_at", now).Error; err != nil {
			return fmt.Errorf("failed to soft delete case: %w", err)
		}

		if c.EscalatedToID != nil {
			err := tx.Model(&models.Case{}).
				Where("id = ?", *c.EscalatedToID).
				Update("deleted_at", now).Error
			if err != nil {
				return fmt.Errorf("failed to soft delete escalation copy: %w", err)
			}
		}

		return nil
	})
}

// hardDeleteCase removes the case row and its dependent records
func hardDeleteCase(db *gorm.DB, caseID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var c models.Case
		if err := tx.First(&c, "id = ?", caseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: case %q", ErrNotFound, caseID)
			}
			return fmt.Errorf("failed to load case: %w", err)
		}

		// Email attachments hang off emails, delete them first
		emailIDs := tx.Model(&models.CaseEmail{}).Select("id").Where("case_id = ?", c.ID)
		if err := tx.Where("case_email_id IN (?)", emailIDs).Delete(&models.CaseEmailAttachment{}).Error; err != nil {
			return fmt.Errorf("failed to delete email attachments: %w", err)
		}
		if err := tx.Where("case_id = ?", c.ID).Delete(&models.CaseEmail{}).Error; err != nil {
			return fmt.Errorf("failed to delete emails: %w", err)
		}
		if err := tx.Where("case_id = ?", c.ID).Delete(&models.CaseNote{}).Error; err != nil {
			return fmt.Errorf("failed to delete notes: %w", err)
		}
		if err := tx.Where("case_id = ?", c.ID).Delete(&models.CaseAttachment{}).Error; err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}

		// Clear any link pointing at the deleted row
		if err := tx.Model(&models.Case{}).Where("escalated_to_id = ?", c.ID).Update("escalated_to_id", nil).Error; err != nil {
			return fmt.Errorf("failed to unlink escalation references: %w", err)
		}

		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("failed to delete case: %w", err)
		}

		return nil
	})
}

// RestoreCase clears the trash timestamp unconditionally. It does not
// cascade to a linked case.
func RestoreCase(db *gorm.DB, caseID string) (*models.Case, error) {
	var c models.Case
	if err := db.First(&c, "id = ?", caseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: case %q", ErrNotFound, caseID)
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}

	if err := db.Model(&c).Update("deleted_at", nil).Error; err != nil {
		return nil, fmt.Errorf("failed to restore case: %w", err)
	}
	c.DeletedAt = nil

	return &c, nil
}

// ListTrash returns trashed cases, most recently deleted first
func ListTrash(db *gorm.DB) ([]models.Case, error) {
	var cases []models.Case
	err := db.
		Preload("Column").
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trash: %w", err)
	}
	return cases, nil
}
