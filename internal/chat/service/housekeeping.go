package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/store"
)

// HousekeepingService periodically reaps stale presence rows and trims the
// message log so neither grows without bound.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	PresenceWindow time.Duration
	MessageRetain  int

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. Zero or negative
// values get sensible defaults.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, presenceWindow time.Duration, messageRetain int) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if presenceWindow <= 0 {
		presenceWindow = DefaultPresenceWindow
	}
	if messageRetain <= 0 {
		messageRetain = 10 * DefaultMessageLimit
	}

	return &HousekeepingService{
		Store:          st,
		Logger:         logger,
		Interval:       interval,
		PresenceWindow: presenceWindow,
		MessageRetain:  messageRetain,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

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

// cleanup runs each reaper independently; a failure in one doesn't stop the
// others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()

	cutoff := time.Now().UTC().Add(-s.PresenceWindow)
	if err := s.Store.Presence().DeleteStalePresence(ctx, cutoff); err != nil {
		s.Logger.Error("failed to reap stale presence", "error", err)
	}

	if err := s.Store.Messages().TrimMessages(ctx, s.MessageRetain); err != nil {
		s.Logger.Error("failed to trim message log", "error", err)
	}

	s.Logger.Debug("housekeeping cleanup completed")
}
