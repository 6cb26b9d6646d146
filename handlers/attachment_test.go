package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"case_flow_app_go/models"
	"case_flow_app_go/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedStoredAttachment(t *testing.T, testDB *gorm.DB, caseID, content string) *models.CaseAttachment {
	t.Helper()

	key := services.GenerateCaseAttachmentKey(caseID, "note.txt")
	_, err := services.Storage.UploadReader(context.Background(), strings.NewReader(content), key, "text/plain", int64(len(content)))
	assert.NoError(t, err)

	attachment := &models.CaseAttachment{
		CaseID:      caseID,
		FileName:    "note.txt",
		MimeType:    "text/plain",
		FileSize:    int64(len(content)),
		StoragePath: key,
	}
	assert.NoError(t, testDB.Create(attachment).Error)
	return attachment
}

func TestDownloadCaseAttachmentHandler(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	created, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "With file"})
	assert.NoError(t, err)
	attachment := seedStoredAttachment(t, testDB, created.ID, "hello attachment")

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/"+created.ID+"/attachments/"+attachment.ID, nil)
	setContextUser(c, models.RoleAgent, testDB, t)
	c.SetParamNames("id", "attachmentID")
	c.SetParamValues(created.ID, attachment.ID)

	assert.NoError(t, DownloadCaseAttachmentHandler(c))
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "hello attachment", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "note.txt")
}

func TestDownloadCaseAttachmentHandler_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	created, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "No file"})
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodGet, "/api/cases/"+created.ID+"/attachments/missing", nil)
	setContextUser(c, models.RoleAgent, testDB, t)
	c.SetParamNames("id", "attachmentID")
	c.SetParamValues(created.ID, "missing")

	assert.NoError(t, DownloadCaseAttachmentHandler(c))
	assertStatus(t, rec, http.StatusNotFound)
}

func TestDownloadCaseAttachmentHandler_WrongCase(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	owner, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "Owner"})
	assert.NoError(t, err)
	other, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "Other"})
	assert.NoError(t, err)
	attachment := seedStoredAttachment(t, testDB, owner.ID, "scoped")

	// The attachment is only reachable through its own case
	_, c, rec := setupEcho(http.MethodGet, "/api/cases/"+other.ID+"/attachments/"+attachment.ID, nil)
	setContextUser(c, models.RoleAgent, testDB, t)
	c.SetParamNames("id", "attachmentID")
	c.SetParamValues(other.ID, attachment.ID)

	assert.NoError(t, DownloadCaseAttachmentHandler(c))
	assertStatus(t, rec, http.StatusNotFound)
}

func TestDeleteCaseAttachmentHandler(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	created, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "Cleanup"})
	assert.NoError(t, err)
	attachment := seedStoredAttachment(t, testDB, created.ID, "short lived")

	_, c, rec := setupEcho(http.MethodDelete, "/api/cases/"+created.ID+"/attachments/"+attachment.ID, nil)
	setContextUser(c, models.RoleAgent, testDB, t)
	c.SetParamNames("id", "attachmentID")
	c.SetParamValues(created.ID, attachment.ID)

	assert.NoError(t, DeleteCaseAttachmentHandler(c))
	assertStatus(t, rec, http.StatusNoContent)

	var count int64
	testDB.Model(&models.CaseAttachment{}).Where("id = ?", attachment.ID).Count(&count)
	assert.Zero(t, count)

	_, _, err = services.Storage.Get(context.Background(), attachment.StoragePath)
	assert.Error(t, err)
}
