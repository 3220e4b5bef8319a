package services

import (
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
)

func newAuditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
