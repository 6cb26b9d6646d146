package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"case_flow_app_go/models"
	"case_flow_app_go/services"

	"github.com/stretchr/testify/assert"
)

func TestInboundEmailWebhookHandler_Delivered(t *testing.T) {
	testDB := setupTestDB(t)
	board, _ := seedTestBoard(t, testDB)

	created, err := services.CreateCase(testDB, services.CreateCaseInput{BoardRef: board.ID, Title: "Inbound target"})
	assert.NoError(t, err)

	body := `{
		"from": "customer@example.com",
		"to": "card-` + created.EmailSlug + `@cases.example.com",
		"subject": "Re: order status",
		"text": "Any update?",
		"message_id": "<msg-1@example.com>",
		"attachments": [
			{"file_name": "po.pdf", "mime_type": "application/pdf", "file_size": 2048, "storage_path": "inbound/po.pdf"}
		]
	}`

	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/inbound-email", strings.NewReader(body))

	assert.NoError(t, InboundEmailWebhookHandler(c))
	assertStatus(t, rec, http.StatusOK)

	var result services.RouteResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, services.RouteStatusDelivered, result.Status)
	assert.Equal(t, created.ID, result.CaseID)

	var email models.CaseEmail
	assert.NoError(t, testDB.Preload("Attachments").First(&email, "case_id = ?", created.ID).Error)
	assert.Equal(t, models.EmailDirectionIn, email.Direction)
	assert.Len(t, email.Attachments, 1)
	assert.Equal(t, "po.pdf", email.Attachments[0].FileName)
}

func TestInboundEmailWebhookHandler_NoSlugStillAccepted(t *testing.T) {
	setupTestDB(t)

	body := `{"from": "customer@example.com", "to": "info@cases.example.com", "subject": "hello"}`
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/inbound-email", strings.NewReader(body))

	assert.NoError(t, InboundEmailWebhookHandler(c))
	assertStatus(t, rec, http.StatusOK)

	var result services.RouteResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, services.RouteStatusNoSlug, result.Status)
}

func TestInboundEmailWebhookHandler_UnknownCaseStillAccepted(t *testing.T) {
	setupTestDB(t)

	body := `{"from": "customer@example.com", "to": "card-zzzzzzzz@cases.example.com", "subject": "hello"}`
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/inbound-email", strings.NewReader(body))

	assert.NoError(t, InboundEmailWebhookHandler(c))
	assertStatus(t, rec, http.StatusOK)

	var result services.RouteResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, services.RouteStatusUnknownCase, result.Status)
}
