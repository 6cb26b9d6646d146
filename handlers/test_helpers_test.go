package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"case_flow_app_go/config"
	"case_flow_app_go/db"
	"case_flow_app_go/middleware"
	"case_flow_app_go/models"
	"case_flow_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests from each other
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	// Fresh local storage per test; t.TempDir is cleaned up with the test
	services.Storage = services.NewLocalStorage(t.TempDir())

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Board{},
		&models.Column{},
		&models.Case{},
		&models.CaseNote{},
		&models.CaseEmail{},
		&models.CaseEmailAttachment{},
		&models.CaseAttachment{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
		AppURL:        "http://localhost:8080",
		InboundDomain: "cases.example.com",
	})

	return e, c, rec
}

func seedTestBoard(t *testing.T, testDB *gorm.DB) (*models.Board, *models.Column) {
	board := &models.Board{Name: "Support", Slug: "support"}
	assert.NoError(t, testDB.Create(board).Error)
	column := &models.Column{BoardID: board.ID, Name: "Inbox", Position: 0}
	assert.NoError(t, testDB.Create(column).Error)
	return board, column
}

func setContextUser(c echo.Context, role string, testDB *gorm.DB, t *testing.T) *models.User {
	user := &models.User{
		Name:     "Tester",
		Email:    uuid.New().String() + "@example.com",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, testDB.Create(user).Error)
	c.Set(middleware.ContextKeyUser, user)
	return user
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	assert.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
