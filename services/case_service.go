package services

import (
	"database/sql"
	"fmt"

	"case_flow_app_go/models"

	"gorm.io/gorm"
)

// CreateCaseInput carries the already-normalized field values supplied
// by the intake or CRM-import flow.
type CreateCaseInput struct {
	BoardRef    string // Board id or human-readable slug, both accepted
	Title       string
	Description string
	CaseType    string

	// Quote-only attributes
	ProductType  *string
	Specs        *string
	CustomerName *string

	CreatorID  *string
	AssigneeID *string
}

// ResolveBoard loads a board by id or by slug, whichever matches
func ResolveBoard(db *gorm.DB, ref string) (*models.Board, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: board reference is required", ErrBadRequest)
	}

	var board models.Board
	err := db.Where("id = ? OR slug = ?", ref, ref).First(&board).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: board %q", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to resolve board: %w", err)
	}
	return &board, nil
}

// NextPosition computes the append position for a column: one past the
// highest existing position, or 0 for an empty column.
func NextPosition(db *gorm.DB, columnID string) (int, error) {
	var max sql.NullInt64
	err := db.Model(&models.Case{}).
		Where("column_id = ?", columnID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next position: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// CreateCase places a new case at the end of the board's first column.
// QUOTE cases additionally get a human-readable quote id.
func CreateCase(db *gorm.DB, input CreateCaseInput) (*models.Case, error) {
	board, err := ResolveBoard(db, input.BoardRef)
	if err != nil {
		return nil, err
	}

	if input.CaseType != "" && !models.IsValidCaseType(input.CaseType) {
		return nil, fmt.Errorf("%w: invalid case type %q", ErrBadRequest, input.CaseType)
	}
	caseType := input.CaseType
	if caseType == "" {
		caseType = models.CaseTypeQuestion
	}

	// First column by ascending position receives new cases
	var column models.Column
	err = db.Where("board_id = ?", board.ID).Order("position ASC").First(&column).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: board %q", ErrNoColumns, board.Slug)
		}
		return nil, fmt.Errorf("failed to find first column: %w", err)
	}

	position, err := NextPosition(db, column.ID)
	if err != nil {
		return nil, err
	}

	slug, err := EnsureUniqueEmailSlug(db)
	if err != nil {
		return nil, err
	}

	newCase := &models.Case{
		BoardID:     board.ID,
		ColumnID:    column.ID,
		Position:    position,
		Title:       input.Title,
		Description: input.Description,
		CaseType:    caseType,
		EmailSlug:   slug,
		CreatorID:   input.CreatorID,
		AssigneeID:  input.AssigneeID,
	}

	if caseType == models.CaseTypeQuote {
		quoteID, err := EnsureUniqueQuoteID(db)
		if err != nil {
			return nil, err
		}
		newCase.QuoteID = &quoteID
		newCase.ProductType = input.ProductType
		newCase.Specs = input.Specs
		newCase.CustomerName = input.CustomerName
	}

	if err := db.Create(newCase).Error; err != nil {
		if isUniqueViolation(err) {
			// Slug or quote id raced another insert; rare and retryable
			return nil, fmt.Errorf("%w: case identifiers collided, retry", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	return newCase, nil
}

// GetCase loads a single case with its placement
func GetCase(db *gorm.DB, caseID string) (*models.Case, error) {
	var c models.Case
	err := db.Preload("Column").First(&c, "id = ?", caseID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: case %q", ErrNotFound, caseID)
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}
	return &c, nil
}

// MoveCase overwrites the case's column and position. Siblings in either
// column are not renumbered, so position values stay sparse; callers
// must tolerate duplicates and gaps.
func MoveCase(db *gorm.DB, caseID, targetColumnID string, targetPosition int) (*models.Case, error) {
	var c models.Case
	if err := db.First(&c, "id = ?", caseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: case %q", ErrNotFound, caseID)
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}

	var column models.Column
	if err := db.First(&column, "id = ?", targetColumnID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: column %q", ErrNotFound, targetColumnID)
		}
		return nil, fmt.Errorf("failed to load column: %w", err)
	}

	updates := map[string]interface{}{
		"column_id": column.ID,
		"board_id":  column.BoardID,
		"position":  targetPosition,
	}
	if err := db.Model(&c).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to move case: %w", err)
	}

	return &c, nil
}

// CaseFilter narrows ListCases results
type CaseFilter struct {
	BoardRef   string // id or slug; empty means all boards
	ActiveOnly bool   // only cases with no closed/archived/deleted timestamp
	CreatorID  string // scope to cases created by this user (client callers)
}

// ListCases returns cases matching the filter, ordered by column position
// then placement position for stable board rendering.
func ListCases(db *gorm.DB, filter CaseFilter) ([]models.Case, error) {
	query := db.Model(&models.Case{})

	if filter.BoardRef != "" {
		board, err := ResolveBoard(db, filter.BoardRef)
		if err != nil {
			return nil, err
		}
		query = query.Where("cases.board_id = ?", board.ID)
	}

	if filter.ActiveOnly {
		query = query.Where("cases.closed_at IS NULL AND cases.archived_at IS NULL AND cases.deleted_at IS NULL")
	}

	if filter.CreatorID != "" {
		query = query.Where("cases.creator_id = ?", filter.CreatorID)
	}

	var cases []models.Case
	err := query.
		Preload("Column").
		Joins("JOIN columns ON columns.id = cases.column_id").
		Order("columns.position ASC, cases.position ASC, cases.created_at ASC").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// updatableCaseFields is the set of columns UpdateCaseFields may touch.
// Placement and identity fields go through their dedicated operations.
var updatableCaseFields = map[string]bool{
	"title":         true,
	"description":   true,
	"case_type":     true,
	"product_type":  true,
	"specs":         true,
	"customer_name": true,
	"assignee_id":   true,
	"closed_at":     true,
	"archived_at":   true,
}

// UpdateCaseFields applies a partial update to a case's mutable fields
func UpdateCaseFields(db *gorm.DB, caseID string, updates map[string]interface{}) (*models.Case, error) {
	for field := range updates {
		if !updatableCaseFields[field] {
			return nil, fmt.Errorf("%w: field %q is not updatable", ErrBadRequest, field)
		}
	}

	var c models.Case
	if err := db.First(&c, "id = ?", caseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: case %q", ErrNotFound, caseID)
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}

	if len(updates) == 0 {
		return &c, nil
	}

	if err := db.Model(&c).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update case: %w", err)
	}

	return &c, nil
}
