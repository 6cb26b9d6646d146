package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"case_flow_app_go/models"

	"gorm.io/gorm"
)

// GetCaseAttachment loads a direct attachment, scoped to its case
func GetCaseAttachment(db *gorm.DB, caseID, attachmentID string) (*models.CaseAttachment, error) {
	var attachment models.CaseAttachment
	err := db.First(&attachment, "id = ? AND case_id = ?", attachmentID, caseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attachment %s: %w", attachmentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load attachment: %w", err)
	}
	return &attachment, nil
}

// DeleteCaseAttachment removes the stored blob and the attachment
// record. A blob that is already gone does not block removing the row.
func DeleteCaseAttachment(ctx context.Context, db *gorm.DB, caseID, attachmentID string) error {
	attachment, err := GetCaseAttachment(db, caseID, attachmentID)
	if err != nil {
		return err
	}

	if attachment.StoragePath != "" {
		if err := Storage.Delete(ctx, attachment.StoragePath); err != nil {
			log.Printf("[WARNING] Failed to delete attachment blob %s: %v", attachment.StoragePath, err)
		}
	}

	if err := db.Delete(attachment).Error; err != nil {
		return fmt.Errorf("failed to delete attachment record: %w", err)
	}
	return nil
}
