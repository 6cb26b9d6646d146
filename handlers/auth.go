package handlers

import (
	"net/http"
	"time"

	"case_flow_app_go/config"
	"case_flow_app_go/db"
	"case_flow_app_go/middleware"
	"case_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates credentials and starts a session
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	user, err := services.Authenticate(db.DB, req.Email, req.Password)
	if err != nil {
		// Credential failures collapse to one message
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return respondError(c, err)
	}

	now := time.Now()
	db.DB.Model(user).Update("last_login_at", now)

	secure := false
	if cfg, ok := c.Get("config").(*config.Config); ok {
		secure = cfg.Environment == "production"
	}
	middleware.SetSessionCookie(c, session, secure)

	return c.JSON(http.StatusOK, user)
}

// LogoutHandler ends the current session
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			return respondError(c, err)
		}
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUserHandler returns the authenticated user
func GetCurrentUserHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.GetCurrentUser(c))
}
