package services

import (
	"fmt"
	"regexp"
	"strings"

	"case_flow_app_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// cardSlugPattern extracts the routing token out of a card-<slug>@
// recipient address. Recipients are lowercased before matching.
var cardSlugPattern = regexp.MustCompile(`card-([a-z0-9]+)@`)

// htmlBodyPolicy strips anything dangerous out of inbound HTML bodies
// before they are stored and later rendered to operators.
var htmlBodyPolicy = bluemonday.UGCPolicy()

// DefaultSubject is recorded when the relay delivers no subject line
const DefaultSubject = "(No Subject)"

// Route statuses. The ignored variants are expected outcomes, not
// errors: the upstream relay retries on failure, so mail that cannot be
// matched to a case must be dropped quietly.
const (
	RouteStatusDelivered   = "delivered"
	RouteStatusDuplicate   = "duplicate"
	RouteStatusNoSlug      = "ignored_no_slug"
	RouteStatusUnknownCase = "ignored_unknown_case"
)

// InboundEmail is the relay-normalized form of an arriving message
type InboundEmail struct {
	From      string
	To        string
	Cc        string
	Subject   string
	TextBody  string
	HTMLBody  string
	MessageID string
	InReplyTo string
}

// InboundAttachment describes a file the relay already stored
type InboundAttachment struct {
	FileName    string
	MimeType    string
	FileSize    int64
	StoragePath string
}

// RouteResult reports what the router did with a delivery
type RouteResult struct {
	Status  string `json:"status"`
	CaseID  string `json:"case_id,omitempty"`
	EmailID string `json:"email_id,omitempty"`
}

// ExtractEmailSlug finds the first card-<slug>@ token in the combined
// recipient fields. Returns "" when no token is present.
func ExtractEmailSlug(recipients string) string {
	match := cardSlugPattern.FindStringSubmatch(strings.ToLower(recipients))
	if match == nil {
		return ""
	}
	return match[1]
}

// RouteInboundEmail attaches a delivered message to the case whose email
// slug appears in the recipient list. Unroutable mail is ignored, not
// failed. A message id already recorded on the target case is treated as
// a relay redelivery and skipped.
func RouteInboundEmail(db *gorm.DB, msg InboundEmail, attachments []InboundAttachment) (*RouteResult, error) {
	slug := ExtractEmailSlug(msg.To + " " + msg.Cc)
	if slug == "" {
		return &RouteResult{Status: RouteStatusNoSlug}, nil
	}

	var c models.Case
	err := db.Where("email_slug = ?", slug).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &RouteResult{Status: RouteStatusUnknownCase}, nil
		}
		return nil, fmt.Errorf("failed to resolve case for slug %q: %w", slug, err)
	}

	if msg.MessageID != "" {
		var existing models.CaseEmail
		err := db.Where("case_id = ? AND message_id = ?", c.ID, msg.MessageID).First(&existing).Error
		if err == nil {
			return &RouteResult{Status: RouteStatusDuplicate, CaseID: c.ID, EmailID: existing.ID}, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to check for duplicate delivery: %w", err)
		}
	}

	subject := msg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	email := &models.CaseEmail{
		CaseID:      c.ID,
		Direction:   models.EmailDirectionIn,
		FromAddress: msg.From,
		ToAddress:   msg.To,
		CcAddress:   msg.Cc,
		Subject:     subject,
		TextBody:    msg.TextBody,
		HTMLBody:    htmlBodyPolicy.Sanitize(msg.HTMLBody),
	}
	if msg.MessageID != "" {
		email.MessageID = &msg.MessageID
	}
	if msg.InReplyTo != "" {
		email.InReplyTo = &msg.InReplyTo
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(email).Error; err != nil {
			return fmt.Errorf("failed to create case email: %w", err)
		}

		for _, att := range attachments {
			record := models.CaseEmailAttachment{
				CaseEmailID: email.ID,
				FileName:    att.FileName,
				MimeType:    att.MimeType,
				FileSize:    att.FileSize,
				StoragePath: att.StoragePath,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create email attachment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RouteResult{Status: RouteStatusDelivered, CaseID: c.ID, EmailID: email.ID}, nil
}
