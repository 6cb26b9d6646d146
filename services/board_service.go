package services

import (
	"fmt"
	"strings"

	"case_flow_app_go/models"

	"gorm.io/gorm"
)

// CreateBoard creates a named pipeline. The slug defaults to a
// lowercased, hyphenated form of the name when not supplied.
func CreateBoard(db *gorm.DB, name, slug string) (*models.Board, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: board name is required", ErrBadRequest)
	}
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	}

	board := &models.Board{Name: name, Slug: slug}
	if err := db.Create(board).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: board slug %q already exists", ErrConflict, slug)
		}
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return board, nil
}

// ListBoards returns all boards with their columns in display order
func ListBoards(db *gorm.DB) ([]models.Board, error) {
	var boards []models.Board
	err := db.
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard loads a board by id or slug with its columns in display order
func GetBoard(db *gorm.DB, ref string) (*models.Board, error) {
	board, err := ResolveBoard(db, ref)
	if err != nil {
		return nil, err
	}

	err = db.
		Where("board_id = ?", board.ID).
		Order("position ASC").
		Find(&board.Columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load board columns: %w", err)
	}

	return board, nil
}

// CreateColumn appends a column to the end of a board
func CreateColumn(db *gorm.DB, boardRef, name, color string, isFinal bool) (*models.Column, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: column name is required", ErrBadRequest)
	}

	board, err := ResolveBoard(db, boardRef)
	if err != nil {
		return nil, err
	}

	column, err := GetOrCreateColumn(db, board.ID, name, color)
	if err != nil {
		return nil, err
	}

	if isFinal && !column.IsFinal {
		if err := db.Model(column).Update("is_final", true).Error; err != nil {
			return nil, fmt.Errorf("failed to mark column final: %w", err)
		}
		column.IsFinal = true
	}

	return column, nil
}
