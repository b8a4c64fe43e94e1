package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/accountkit/account-service/internal/database"
	"github.com/accountkit/account-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandlerFansOutByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	errOnly := slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError})
	logger := slog.New(NewMultiHandler(NewJSONHandler(&info), errOnly))

	logger.Info("device registered", "action", "create_device")
	logger.Error("flush failed", "error", "boom")

	assert.Contains(t, info.String(), "device registered")
	assert.Contains(t, info.String(), "flush failed")
	assert.NotContains(t, errs.String(), "device registered")
	assert.Contains(t, errs.String(), "flush failed")

	assert.False(t, NewMultiHandler(errOnly).Enabled(context.Background(), slog.LevelInfo))
}

func TestPGHandlerPersistsErrors(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	h := NewPGHandler(db)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("ignored")
	logger.Error("login lookup failed",
		"user_id", "u-1",
		"action", "login",
		"error", "connection reset",
		"latency_ms", 12.6,
		"attempt", 3,
	)
	h.Stop()
	h.Stop()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "login lookup failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u-1", *entry.UserID)
	assert.Equal(t, "login", entry.Action)
	assert.Equal(t, "connection reset", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	assert.JSONEq(t, `{"attempt":3}`, string(entry.Extra))
}

func TestPurge(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, db.Create(&[]models.SystemLog{
		{ID: uuid.New(), Timestamp: now.AddDate(0, 0, -40), Level: "ERROR"},
		{ID: uuid.New(), Timestamp: now, Level: "ERROR"},
	}).Error)

	deleted, err := Purge(db, now.Add(-logRetention))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining int64
	require.NoError(t, db.Model(&models.SystemLog{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)
}
