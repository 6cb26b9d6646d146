package handlers

import (
	"net/http"

	"case_flow_app_go/config"
	"case_flow_app_go/db"
	"case_flow_app_go/models"
	"case_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// EscalateCaseHandler forks a case into the Escalations lane
func EscalateCaseHandler(c echo.Context) error {
	caseID := c.Param("id")

	copyCase, err := services.EscalateCase(db.DB, caseID)
	if err != nil {
		return respondError(c, err)
	}

	notifyEscalation(c, caseID, copyCase)

	return c.JSON(http.StatusCreated, copyCase)
}

// DeescalateCaseHandler moves the escalation copy into the De-escalated
// lane. Accepts either the original's or the copy's id.
func DeescalateCaseHandler(c echo.Context) error {
	moved, err := services.DeescalateCase(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, moved)
}

// notifyEscalation mails the assignee about the new review copy.
// Best effort; delivery failures only get logged.
func notifyEscalation(c echo.Context, originalID string, copyCase *models.Case) {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok || copyCase.AssigneeID == nil {
		return
	}

	original, err := services.GetCase(db.DB, originalID)
	if err != nil {
		return
	}

	var assignee models.User
	if err := db.DB.First(&assignee, "id = ?", *copyCase.AssigneeID).Error; err != nil {
		return
	}

	email := services.BuildEscalationNoticeEmail(assignee.Email, original, copyCase, cfg.AppURL)
	services.SendEmailAsync(cfg, email)
}
