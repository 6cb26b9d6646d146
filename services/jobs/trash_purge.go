package jobs

import (
	"log"
	"time"

	"case_flow_app_go/models"
	"case_flow_app_go/services"

	"gorm.io/gorm"
)

// PurgeExpiredTrash permanently removes cases whose deleted_at is older
// than retentionDays. The lifecycle engine only stamps deleted_at; this
// sweep is the external collaborator that enforces the retention window.
func PurgeExpiredTrash(database *gorm.DB, retentionDays int) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	var expired []models.Case
	err := database.
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Find(&expired).Error
	if err != nil {
		log.Printf("Error fetching expired trash: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	log.Printf("Purging %d cases trashed before %s", len(expired), cutoff.Format(time.DateOnly))

	purged := 0
	for _, c := range expired {
		if err := services.SoftDeleteCase(database, c.ID, true); err != nil {
			log.Printf("Error purging case %s: %v", c.ID, err)
			continue
		}
		purged++
	}

	log.Printf("Trash purge complete: %d of %d cases removed", purged, len(expired))
}
