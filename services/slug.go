package services

import (
	"crypto/rand"
	"fmt"

	"case_flow_app_go/models"

	"gorm.io/gorm"
)

const (
	// EmailSlugLength is the length of the token in card-<slug>@ addresses
	EmailSlugLength = 8
	// QuoteIDLength is the length of the human-readable quote reference
	QuoteIDLength = 6

	emailSlugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// Uppercase alphanumerics without easily-confused characters
	quoteIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// randomToken draws length characters from alphabet using crypto/rand
func randomToken(alphabet string, length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range bytes {
		bytes[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(bytes), nil
}

// GenerateEmailSlug produces a fresh 8-character lowercase alphanumeric
// token. Uniqueness is not checked here; the unique index on
// cases.email_slug is the authority.
func GenerateEmailSlug() (string, error) {
	return randomToken(emailSlugAlphabet, EmailSlugLength)
}

// EnsureUniqueEmailSlug generates an email slug with retry logic.
// Retries if a collision with an existing case is detected.
func EnsureUniqueEmailSlug(db *gorm.DB) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		slug, err := GenerateEmailSlug()
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.Case{}).Where("email_slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check email slug uniqueness: %w", err)
		}

		if count == 0 {
			return slug, nil
		}

		// Collision detected, retry
	}

	return "", fmt.Errorf("failed to generate unique email slug after %d retries", maxRetries)
}

// GenerateQuoteID produces a short uppercase alphanumeric quote reference
func GenerateQuoteID() (string, error) {
	token, err := randomToken(quoteIDAlphabet, QuoteIDLength)
	if err != nil {
		return "", err
	}
	return "Q" + token, nil
}

// EnsureUniqueQuoteID generates a quote id with retry logic
func EnsureUniqueQuoteID(db *gorm.DB) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		quoteID, err := GenerateQuoteID()
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.Case{}).Where("quote_id = ?", quoteID).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check quote id uniqueness: %w", err)
		}

		if count == 0 {
			return quoteID, nil
		}

		// Collision detected, retry
	}

	return "", fmt.Errorf("failed to generate unique quote id after %d retries", maxRetries)
}
