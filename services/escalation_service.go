package services

import (
	"fmt"

	"case_flow_app_go/models"

	"gorm.io/gorm"
)

// EscalatedTitlePrefix marks the review copy of an escalated case
const EscalatedTitlePrefix = "[ESCALATED] "

// GetOrCreateColumn finds a column by name on a board, creating it at the
// end of the board if missing. Creation races resolve through the unique
// index on (board_id, name): on conflict the winner's row is re-read.
func GetOrCreateColumn(db *gorm.DB, boardID, name, color string) (*models.Column, error) {
	var column models.Column
	err := db.Where("board_id = ? AND name = ?", boardID, name).First(&column).Error
	if err == nil {
		return &column, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up column %q: %w", name, err)
	}

	// Append after the current highest-position column
	var maxPosition int
	row := db.Model(&models.Column{}).
		Where("board_id = ?", boardID).
		Select("COALESCE(MAX(position), -1)").
		Row()
	if err := row.Scan(&maxPosition); err != nil {
		return nil, fmt.Errorf("failed to compute column position: %w", err)
	}

	column = models.Column{
		BoardID:  boardID,
		Name:     name,
		Position: maxPosition + 1,
		Color:    color,
	}
	if err := db.Create(&column).Error; err != nil {
		if isUniqueViolation(err) {
			// Someone else created it concurrently; use theirs
			var existing models.Column
			if readErr := db.Where("board_id = ? AND name = ?", boardID, name).First(&existing).Error; readErr == nil {
				return &existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create column %q: %w", name, err)
	}

	return &column, nil
}

// EscalateCase forks a case into the board's "Escalations" lane and links
// the original to the new copy via escalated_to_id.
//
// Re-escalating an already-escalated original is tolerated: a fresh copy
// is created and the link overwritten. The previous copy stays behind in
// the Escalations lane as history and is not cleaned up.
func EscalateCase(db *gorm.DB, caseID string) (*models.Case, error) {
	var copyCase *models.Case

	err := db.Transaction(func(tx *gorm.DB) error {
		var original models.Case
		if err := tx.First(&original, "id = ?", caseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: case %q", ErrNotFound, caseID)
			}
			return fmt.Errorf("failed to load case: %w", err)
		}

		lane, err := GetOrCreateColumn(tx, original.BoardID, models.ColumnNameEscalations, models.ColumnColorEscalations)
		if err != nil {
			return err
		}

		position, err := NextPosition(tx, lane.ID)
		if err != nil {
			return err
		}

		slug, err := EnsureUniqueEmailSlug(tx)
		if err != nil {
			return err
		}

		// Duplicate the original's fields. Identity, timestamps, the
		// lifecycle columns and the escalation link start fresh; the
		// unique email slug and quote id are minted anew.
		copyCase = &models.Case{
			BoardID:      original.BoardID,
			ColumnID:     lane.ID,
			Position:     position,
			Title:        EscalatedTitlePrefix + original.Title,
			Description:  original.Description,
			CaseType:     original.CaseType,
			EmailSlug:    slug,
			ProductType:  original.ProductType,
			Specs:        original.Specs,
			CustomerName: original.CustomerName,
			CreatorID:    original.CreatorID,
			AssigneeID:   original.AssigneeID,
		}
		if original.QuoteID != nil {
			quoteID, err := EnsureUniqueQuoteID(tx)
			if err != nil {
				return err
			}
			copyCase.QuoteID = &quoteID
		}

		if err := tx.Create(copyCase).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: case identifiers collided, retry", ErrConflict)
			}
			return fmt.Errorf("failed to create escalation copy: %w", err)
		}

		if err := tx.Model(&original).Update("escalated_to_id", copyCase.ID).Error; err != nil {
			return fmt.Errorf("failed to link escalation copy: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return copyCase, nil
}

// DeescalateCase moves a case's escalation copy into the board's
// "De-escalated" lane. It accepts either side of the link: given the
// original, the target is the linked copy; given the copy (or any case
// with no outgoing link), the case itself is moved.
//
// The original's escalated_to_id is deliberately left in place. Lineage
// is preserved; whether an escalation is still active is read off the
// target's current column name.
func DeescalateCase(db *gorm.DB, caseID string) (*models.Case, error) {
	var target *models.Case

	err := db.Transaction(func(tx *gorm.DB) error {
		var input models.Case
		if err := tx.First(&input, "id = ?", caseID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: case %q", ErrNotFound, caseID)
			}
			return fmt.Errorf("failed to load case: %w", err)
		}

		target = &input
		if input.EscalatedToID != nil {
			var linked models.Case
			if err := tx.First(&linked, "id = ?", *input.EscalatedToID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: escalation copy %q", ErrNotFound, *input.EscalatedToID)
				}
				return fmt.Errorf("failed to load escalation copy: %w", err)
			}
			target = &linked
		}

		lane, err := GetOrCreateColumn(tx, target.BoardID, models.ColumnNameDeescalated, models.ColumnColorDeescalated)
		if err != nil {
			return err
		}

		position, err := NextPosition(tx, lane.ID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"column_id": lane.ID,
			"position":  position,
		}
		if err := tx.Model(target).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to move case to de-escalated lane: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// FindEscalationOriginal returns the case whose escalated_to_id points at
// the given copy, or nil when the copy has no linked original.
func FindEscalationOriginal(db *gorm.DB, copyID string) (*models.Case, error) {
	var original models.Case
	err := db.Where("escalated_to_id = ?", copyID).First(&original).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find escalation original: %w", err)
	}
	return &original, nil
}
