package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/accountkit/account-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	flushInterval = 5 * time.Second
	flushBatch    = 50
)

// PGHandler is an slog.Handler that batches ERROR+ logs into system_logs.
type PGHandler struct {
	*sink
	attrs []slog.Attr
}

// sink is shared between a handler and the copies made by WithAttrs.
type sink struct {
	db       *gorm.DB
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	stopped  sync.WaitGroup
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	s := &sink{
		db:     db,
		buffer: make([]models.SystemLog, 0, flushBatch),
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
	}
	s.stopped.Add(1)
	go s.flushLoop()
	return &PGHandler{sink: s}
}

func (s *sink) flushLoop() {
	defer s.stopped.Done()
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *sink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, flushBatch)
	s.mu.Unlock()

	if err := s.db.CreateInBatches(batch, flushBatch).Error; err != nil {
		// the default logger may route back here; stay on the stdlib logger
		slog.New(NewJSONHandler(os.Stderr)).Error("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes pending records and waits for the flush loop to exit.
func (s *sink) Stop() {
	s.stopOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
	s.stopped.Wait()
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time.UTC(),
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]interface{})
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch a.Value.Kind() {
			case slog.KindFloat64:
				entry.LatencyMs = int(math.Round(a.Value.Float64()))
			case slog.KindInt64:
				entry.LatencyMs = int(a.Value.Int64())
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	h.buffer = append(h.buffer, entry)
	needFlush := len(h.buffer) >= flushBatch
	h.mu.Unlock()

	if needFlush {
		go h.flush()
	}
	return nil
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PGHandler{sink: h.sink, attrs: merged}
}

// WithGroup is a no-op; system_logs has no nested attributes.
func (h *PGHandler) WithGroup(_ string) slog.Handler {
	return h
}
