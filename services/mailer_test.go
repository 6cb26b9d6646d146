package services

import (
	"testing"

	"case_flow_app_go/config"
	"case_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildEscalationNoticeEmail(t *testing.T) {
	original := &models.Case{Title: "Broken widget"}
	copyCase := &models.Case{ID: "copy-id", Title: "[ESCALATED] Broken widget"}

	email := BuildEscalationNoticeEmail("agent@example.com", original, copyCase, "https://app.example.com/")

	assert.Equal(t, []string{"agent@example.com"}, email.To)
	assert.Equal(t, "Case escalated: Broken widget", email.Subject)
	assert.Contains(t, email.TextBody, "https://app.example.com/cases/copy-id")
	assert.Contains(t, email.HTMLBody, "Broken widget")
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}

	err := SendEmail(cfg, &Email{
		To:       []string{"agent@example.com"},
		Subject:  "Test",
		TextBody: "body",
	})
	assert.NoError(t, err)
}

func TestSendEmail_MissingAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false}

	err := SendEmail(cfg, &Email{
		To:       []string{"agent@example.com"},
		Subject:  "Test",
		TextBody: "body",
	})
	assert.Error(t, err)
}
