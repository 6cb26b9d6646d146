package services

import (
	"fmt"
	"log"
	"strings"

	"case_flow_app_go/config"
	"case_flow_app_go/models"

	"github.com/resend/resend-go/v2"
)

// Email represents an outbound notification message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// BuildEscalationNoticeEmail notifies the assignee that a case was
// forked into the Escalations lane.
func BuildEscalationNoticeEmail(toEmail string, original, copy *models.Case, appURL string) *Email {
	caseLink := fmt.Sprintf("%s/cases/%s", strings.TrimSuffix(appURL, "/"), copy.ID)

	text := fmt.Sprintf(
		"The case %q has been escalated for review.\n\nReview copy: %s\n",
		original.Title, caseLink,
	)
	html := fmt.Sprintf(
		`<p>The case <strong>%s</strong> has been escalated for review.</p><p><a href="%s">Open the review copy</a></p>`,
		original.Title, caseLink,
	)

	return &Email{
		To:       []string{toEmail},
		Subject:  "Case escalated: " + original.Title,
		HTMLBody: html,
		TextBody: text,
	}
}

// SendEmail delivers an email via Resend. In test mode the message is
// logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Prefer HTML if available
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// SendEmailAsync fires the email off in a goroutine; failures are logged
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func() {
		if err := SendEmail(cfg, emailCopy); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}()
}

func logEmailToConsole(email *Email) {
	log.Println("---- EMAIL (test mode, not sent) ----")
	log.Printf("To:      %s", strings.Join(email.To, ", "))
	log.Printf("Subject: %s", email.Subject)
	if email.TextBody != "" {
		log.Printf("Body:\n%s", email.TextBody)
	}
	log.Println("-------------------------------------")
}
