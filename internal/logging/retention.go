package logging

import (
	"context"
	"time"

	"github.com/patinhas/adoption-api/internal/models"
	"gorm.io/gorm"
)

// PurgeOlderThan deletes system_logs rows older than the retention window.
func PurgeOlderThan(ctx context.Context, db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return res.RowsAffected, res.Error
}
