package jobs

import (
	"context"
	"time"

	"github.com/patinhas/adoption-api/internal/logging"
	"gorm.io/gorm"
)

// TokenPurger deletes expired and revoked refresh tokens.
type TokenPurger interface {
	PurgeRefreshTokens(ctx context.Context) (int64, error)
}

// Maintenance returns the daily log retention job and the hourly refresh
// token purge.
func Maintenance(db *gorm.DB, tokens TokenPurger, retention time.Duration) []Job {
	return []Job{
		{
			Name:     "system_log_retention",
			Schedule: "@daily",
			Timeout:  5 * time.Minute,
			Run: func(ctx context.Context) (int64, error) {
				return logging.PurgeOlderThan(ctx, db, retention)
			},
		},
		{
			Name:     "refresh_token_purge",
			Schedule: "@hourly",
			Timeout:  time.Minute,
			Run:      tokens.PurgeRefreshTokens,
		},
	}
}
