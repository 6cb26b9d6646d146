package handlers

import (
	"net/http"

	"case_flow_app_go/db"
	"case_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// inboundEmailPayload is the shape the mail relay posts on delivery
type inboundEmailPayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Cc        string `json:"cc"`
	Subject   string `json:"subject"`
	Text      string `json:"text"`
	HTML      string `json:"html"`
	MessageID string `json:"message_id"`
	InReplyTo string `json:"in_reply_to"`

	Attachments []struct {
		FileName    string `json:"file_name"`
		MimeType    string `json:"mime_type"`
		FileSize    int64  `json:"file_size"`
		StoragePath string `json:"storage_path"`
	} `json:"attachments"`
}

// InboundEmailWebhookHandler receives delivery events from the mail
// relay. Mail that cannot be matched to a case is acknowledged with an
// ignored status rather than an error: the relay retries on non-2xx, and
// unroutable mail will never become routable. Storage failures do return
// an error so the relay redelivers.
func InboundEmailWebhookHandler(c echo.Context) error {
	var payload inboundEmailPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	msg := services.InboundEmail{
		From:      payload.From,
		To:        payload.To,
		Cc:        payload.Cc,
		Subject:   payload.Subject,
		TextBody:  payload.Text,
		HTMLBody:  payload.HTML,
		MessageID: payload.MessageID,
		InReplyTo: payload.InReplyTo,
	}

	attachments := make([]services.InboundAttachment, 0, len(payload.Attachments))
	for _, att := range payload.Attachments {
		attachments = append(attachments, services.InboundAttachment{
			FileName:    att.FileName,
			MimeType:    att.MimeType,
			FileSize:    att.FileSize,
			StoragePath: att.StoragePath,
		})
	}

	result, err := services.RouteInboundEmail(db.DB, msg, attachments)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
