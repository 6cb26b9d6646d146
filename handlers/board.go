package handlers

import (
	"net/http"

	"case_flow_app_go/db"
	"case_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

type createBoardRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateBoardHandler creates a new board
func CreateBoardHandler(c echo.Context) error {
	var req createBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	board, err := services.CreateBoard(db.DB, req.Name, req.Slug)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, board)
}

// GetBoardsHandler lists all boards with their columns
func GetBoardsHandler(c echo.Context) error {
	boards, err := services.ListBoards(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, boards)
}

// GetBoardHandler returns one board with its columns in display order
func GetBoardHandler(c echo.Context) error {
	board, err := services.GetBoard(db.DB, c.Param("ref"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, board)
}

type createColumnRequest struct {
	Name    string `json:"name"`
	Color   string `json:"color"`
	IsFinal bool   `json:"is_final"`
}

// CreateColumnHandler appends a column to a board
func CreateColumnHandler(c echo.Context) error {
	var req createColumnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	column, err := services.CreateColumn(db.DB, c.Param("ref"), req.Name, req.Color, req.IsFinal)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, column)
}

// ExportBoardHandler streams a spreadsheet of the board's cases
func ExportBoardHandler(c echo.Context) error {
	buf, err := services.ExportBoard(db.DB, c.Param("ref"))
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="board_export.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
