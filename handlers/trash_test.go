package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"case_flow_app_go/models"
	"case_flow_app_go/services"

	"github.com/stretchr/testify/assert"
)

func TestDeleteCaseHandler_SoftThenRestore(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	created, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "Trash me"})
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/"+created.ID, nil)
	setContextUser(c, models.RoleAgent, testDB, t)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)

	assert.NoError(t, DeleteCaseHandler(c))
	assertStatus(t, rec, http.StatusNoContent)

	var reloaded models.Case
	testDB.First(&reloaded, "id = ?", created.ID)
	assert.NotNil(t, reloaded.DeletedAt)

	_, c2, rec2 := setupEcho(http.MethodPost, "/api/cases/"+created.ID+"/restore", nil)
	setContextUser(c2, models.RoleAgent, testDB, t)
	c2.SetParamNames("id")
	c2.SetParamValues(created.ID)

	assert.NoError(t, RestoreCaseHandler(c2))
	assertStatus(t, rec2, http.StatusOK)

	// Scan into a fresh struct: gorm leaves a stale non-nil pointer
	// untouched when the column is NULL
	var restored models.Case
	testDB.First(&restored, "id = ?", created.ID)
	assert.Nil(t, restored.DeletedAt)
}

func TestDeleteCaseHandler_Permanent(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	created, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "Gone"})
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/"+created.ID+"?permanent=true", nil)
	setContextUser(c, models.RoleAgent, testDB, t)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)

	assert.NoError(t, DeleteCaseHandler(c))
	assertStatus(t, rec, http.StatusNoContent)

	var count int64
	testDB.Model(&models.Case{}).Where("id = ?", created.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteCaseHandler_NotFound(t *testing.T) {
	testDB := setupTestDB(t)

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/missing", nil)
	setContextUser(c, models.RoleAgent, testDB, t)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	assert.NoError(t, DeleteCaseHandler(c))
	assertStatus(t, rec, http.StatusNotFound)
}

func TestListTrashHandler(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	created, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "In trash"})
	assert.NoError(t, err)
	assert.NoError(t, services.SoftDeleteCase(testDB, created.ID, false))

	_, c, rec := setupEcho(http.MethodGet, "/api/trash", nil)
	setContextUser(c, models.RoleAgent, testDB, t)

	assert.NoError(t, ListTrashHandler(c))
	assertStatus(t, rec, http.StatusOK)

	var cases []models.Case
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cases))
	assert.Len(t, cases, 1)
	assert.Equal(t, created.ID, cases[0].ID)
}
