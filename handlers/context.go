package handlers

import (
	"case_flow_app_go/middleware"
	"case_flow_app_go/models"

	"github.com/labstack/echo/v4"
)

func currentUser(c echo.Context) *models.User {
	return middleware.GetCurrentUser(c)
}
