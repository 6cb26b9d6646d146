package handlers

import (
	"net/http"

	"case_flow_app_go/db"
	"case_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// DeleteCaseHandler trashes a case, or removes it permanently when the
// permanent query parameter is set
func DeleteCaseHandler(c echo.Context) error {
	permanent := c.QueryParam("permanent") == "true"

	if err := services.SoftDeleteCase(db.DB, c.Param("id"), permanent); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RestoreCaseHandler clears a case's trash timestamp
func RestoreCaseHandler(c echo.Context) error {
	restored, err := services.RestoreCase(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, restored)
}

// ListTrashHandler returns trashed cases, most recently deleted first
func ListTrashHandler(c echo.Context) error {
	cases, err := services.ListTrash(db.DB)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, cases)
}
