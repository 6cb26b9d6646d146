package services

import (
	"bytes"
	"errors"
	"testing"

	"case_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestExportBoard(t *testing.T) {
	db := setupCaseTestDB()
	board, _, _ := seedBoard(t, db)

	CreateCase(db, CreateCaseInput{BoardRef: board.ID, Title: "Exported order", CaseType: models.CaseTypeOrder})
	trashed, _ := CreateCase(db, CreateCaseInput{BoardRef: board.ID, Title: "Trashed"})
	SoftDeleteCase(db, trashed.ID, false)

	buf, err := ExportBoard(db, "sales")
	assert.NoError(t, err)
	assert.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Cases")
	assert.NoError(t, err)
	// Header plus the one non-trashed case
	assert.Len(t, rows, 2)
	assert.Equal(t, "Title", rows[0][0])
	assert.Equal(t, "Exported order", rows[1][0])
	assert.Equal(t, "Backlog", rows[1][1])
}

func TestExportBoard_UnknownBoard(t *testing.T) {
	db := setupCaseTestDB()

	_, err := ExportBoard(db, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
