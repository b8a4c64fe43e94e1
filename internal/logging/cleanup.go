package logging

import (
	"log/slog"
	"time"

	"github.com/accountkit/account-service/internal/models"
	"gorm.io/gorm"
)

const logRetention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs older than 30 days.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Purge(db, time.Now().Add(-logRetention))
				if err != nil {
					slog.Error("log cleanup failed", "action", "log_cleanup", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

// Purge deletes system logs with a timestamp before cutoff.
func Purge(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff.UTC()).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
