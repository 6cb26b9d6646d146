package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportBoard writes a spreadsheet of a board's cases, one sheet listing
// every case with its stage, type and lifecycle state. Trashed cases are
// excluded.
func ExportBoard(db *gorm.DB, boardRef string) (*bytes.Buffer, error) {
	board, err := ResolveBoard(db, boardRef)
	if err != nil {
		return nil, err
	}

	cases, err := ListCases(db, CaseFilter{BoardRef: board.ID})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cases"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Title", "Stage", "Type", "Quote ID", "Customer", "Created", "Closed", "Archived", "Email Address Token"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	f.SetCellStyle(sheet, "A1", "I1", headerStyle)

	for row, c := range cases {
		if c.DeletedAt != nil {
			continue
		}

		values := []interface{}{
			c.Title,
			c.Column.Name,
			c.CaseType,
			deref(c.QuoteID),
			deref(c.CustomerName),
			c.CreatedAt.Format(time.DateOnly),
			formatTimestamp(c.ClosedAt),
			formatTimestamp(c.ArchivedAt),
			c.EmailSlug,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "E", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write export for board %q: %w", board.Slug, err)
	}

	return &buf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
