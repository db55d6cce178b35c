package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/opencourse/transcripts/internal/exams/store"
	"github.com/opencourse/transcripts/pkg/jwtx"
)

// HousekeepingService periodically removes expired database records so
// abandoned MFA challenges and lapsed signing keys do not pile up.
type HousekeepingService struct {
	Store    store.Store
	Keys     *jwtx.PersistentKeyManager // nil in ephemeral key mode
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, keys *jwtx.PersistentKeyManager, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Keys:     keys,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletion of expired records.
// Each deletion is independent - failures in one won't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	// Clean expired MFA challenge sessions
	if deleted, err := s.Store.MFASessions().DeleteExpiredMFASessions(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired MFA sessions", "error", err)
	} else if deleted > 0 {
		s.Logger.Info("deleted expired MFA sessions", "count", deleted)
	}

	// Sweep signing keys whose retirement grace has lapsed. The manager
	// drops them from the verification set and the store in one pass.
	if s.Keys != nil {
		if removed, err := s.Keys.SweepExpired(ctx); err != nil {
			s.Logger.Error("failed to sweep expired signing keys", "error", err)
		} else if removed > 0 {
			s.Logger.Info("swept expired signing keys", "count", removed)
		}
	}
}
