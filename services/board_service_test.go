package services

import (
	"errors"
	"testing"

	"case_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateBoard(t *testing.T) {
	db := setupCaseTestDB()

	board, err := CreateBoard(db, "Service Requests", "")
	assert.NoError(t, err)
	assert.Equal(t, "service-requests", board.Slug)

	_, err = CreateBoard(db, "Duplicate", "service-requests")
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = CreateBoard(db, "", "")
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestGetBoard_ColumnsInDisplayOrder(t *testing.T) {
	db := setupCaseTestDB()
	seedBoard(t, db)

	loaded, err := GetBoard(db, "sales")
	assert.NoError(t, err)
	assert.Len(t, loaded.Columns, 2)
	assert.Equal(t, "Backlog", loaded.Columns[0].Name)
	assert.Equal(t, "Done", loaded.Columns[1].Name)
}

func TestCreateColumn_Appends(t *testing.T) {
	db := setupCaseTestDB()
	board, _, _ := seedBoard(t, db)

	column, err := CreateColumn(db, board.ID, "Review", "#3498db", false)
	assert.NoError(t, err)
	assert.Equal(t, 2, column.Position)

	// Creating the same name again returns the existing column
	again, err := CreateColumn(db, board.ID, "Review", "", false)
	assert.NoError(t, err)
	assert.Equal(t, column.ID, again.ID)

	var count int64
	db.Model(&models.Column{}).Where("board_id = ?", board.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestGetOrCreateColumn_FirstColumnOnEmptyBoard(t *testing.T) {
	db := setupCaseTestDB()
	board, err := CreateBoard(db, "Bare", "")
	assert.NoError(t, err)

	column, err := GetOrCreateColumn(db, board.ID, models.ColumnNameEscalations, models.ColumnColorEscalations)
	assert.NoError(t, err)
	assert.Equal(t, 0, column.Position)
}
