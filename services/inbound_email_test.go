package services

import (
	"testing"

	"case_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmailSlug(t *testing.T) {
	assert.Equal(t, "ab12cd34", ExtractEmailSlug("card-ab12cd34@mail.example.com"))
	assert.Equal(t, "ab12cd34", ExtractEmailSlug("Ops <ops@example.com>, CARD-AB12CD34@Mail.Example.Com"))
	assert.Equal(t, "x9", ExtractEmailSlug("noise card-x9@a card-zz@b"))
	assert.Equal(t, "", ExtractEmailSlug("ops@example.com"))
	assert.Equal(t, "", ExtractEmailSlug(""))
	assert.Equal(t, "", ExtractEmailSlug("card-@example.com"))
}

func TestRouteInboundEmail_Delivered(t *testing.T) {
	db := setupCaseTestDB()
	board, _, _ := seedBoard(t, db)

	c, _ := CreateCase(db, CreateCaseInput{BoardRef: board.ID, Title: "Waiting for mail"})

	result, err := RouteInboundEmail(db, InboundEmail{
		From:      "customer@example.com",
		To:        "support@example.com",
		Cc:        "Card-" + c.EmailSlug + "@mail.example.com",
		Subject:   "Re: your quote",
		TextBody:  "Looks good",
		MessageID: "<msg-1@relay>",
		InReplyTo: "<orig@relay>",
	}, []InboundAttachment{
		{FileName: "sketch.png", MimeType: "image/png", FileSize: 2048, StoragePath: "inbound/sketch.png"},
		{FileName: "terms.pdf", MimeType: "application/pdf", FileSize: 4096, StoragePath: "inbound/terms.pdf"},
	})
	assert.NoError(t, err)
	assert.Equal(t, RouteStatusDelivered, result.Status)
	assert.Equal(t, c.ID, result.CaseID)

	var email models.CaseEmail
	assert.NoError(t, db.Preload("Attachments").First(&email, "id = ?", result.EmailID).Error)
	assert.Equal(t, models.EmailDirectionIn, email.Direction)
	assert.Equal(t, "Re: your quote", email.Subject)
	assert.Equal(t, "<msg-1@relay>", *email.MessageID)
	assert.Equal(t, "<orig@relay>", *email.InReplyTo)
	assert.Len(t, email.Attachments, 2)
}

func TestRouteInboundEmail_NoSlug(t *testing.T) {
	db := setupCaseTestDB()

	result, err := RouteInboundEmail(db, InboundEmail{
		From: "someone@example.com",
		To:   "info@example.com",
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, RouteStatusNoSlug, result.Status)

	var count int64
	db.Model(&models.CaseEmail{}).Count(&count)
	assert.Zero(t, count)
}

func TestRouteInboundEmail_UnknownCase(t *testing.T) {
	db := setupCaseTestDB()

	result, err := RouteInboundEmail(db, InboundEmail{
		From: "someone@example.com",
		To:   "card-zzzz9999@mail.example.com",
	}, nil)
	assert.NoError(t, err)
	assert.Equal(t, RouteStatusUnknownCase, result.Status)

	var count int64
	db.Model(&models.CaseEmail{}).Count(&count)
	assert.Zero(t, count)
}

func TestRouteInboundEmail_DefaultSubject(t *testing.T) {
	db := setupCaseTestDB()
	board, _, _ := seedBoard(t, db)

	c, _ := CreateCase(db, CreateCaseInput{BoardRef: board.ID, Title: "x"})

	result, err := RouteInboundEmail(db, InboundEmail{
		From: "someone@example.com",
		To:   "card-" + c.EmailSlug + "@mail.example.com",
	}, nil)
	assert.NoError(t, err)

	var email models.CaseEmail
	db.First(&email, "id = ?", result.EmailID)
	assert.Equal(t, DefaultSubject, email.Subject)
}

func TestRouteInboundEmail_DuplicateMessageID(t *testing.T) {
	db := setupCaseTestDB()
	board, _, _ := seedBoard(t, db)

	c, _ := CreateCase(db, CreateCaseInput{BoardRef: board.ID, Title: "x"})

	msg := InboundEmail{
		From:      "someone@example.com",
		To:        "card-" + c.EmailSlug + "@mail.example.com",
		Subject:   "once",
		MessageID: "<dup@relay>",
	}

	first, err := RouteInboundEmail(db, msg, nil)
	assert.NoError(t, err)
	assert.Equal(t, RouteStatusDelivered, first.Status)

	second, err := RouteInboundEmail(db, msg, nil)
	assert.NoError(t, err)
	assert.Equal(t, RouteStatusDuplicate, second.Status)
	assert.Equal(t, first.EmailID, second.EmailID)

	var count int64
	db.Model(&models.CaseEmail{}).Where("case_id = ?", c.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRouteInboundEmail_SanitizesHTML(t *testing.T) {
	db := setupCaseTestDB()
	board, _, _ := seedBoard(t, db)

	c, _ := CreateCase(db, CreateCaseInput{BoardRef: board.ID, Title: "x"})

	result, err := RouteInboundEmail(db, InboundEmail{
		From:     "someone@example.com",
		To:       "card-" + c.EmailSlug + "@mail.example.com",
		HTMLBody: `<p>hello</p><script>alert("xss")</script>`,
	}, nil)
	assert.NoError(t, err)

	var email models.CaseEmail
	db.First(&email, "id = ?", result.EmailID)
	assert.Contains(t, email.HTMLBody, "<p>hello</p>")
	assert.NotContains(t, email.HTMLBody, "<script>")
}
