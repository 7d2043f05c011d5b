package chatsdk

import (
	"context"
	"time"
)

// DefaultPollInterval is the snapshot polling cadence.
const DefaultPollInterval = 3 * time.Second

// SyncEngine drives the fixed-cadence snapshot polling. Each tick captures
// the session current at that moment and launches the fetch in its own
// goroutine, so a slow request never delays the next tick; the apply step's
// session identity check makes overlapping responses harmless in any order.
type SyncEngine struct {
	controller *Controller
	interval   time.Duration
	force      chan struct{}
}

func newSyncEngine(c *Controller, interval time.Duration) *SyncEngine {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &SyncEngine{
		controller: c,
		interval:   interval,
		force:      make(chan struct{}, 1),
	}
}

// Run polls until ctx is cancelled. Ticks while logged out are skipped.
func (e *SyncEngine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-e.force:
		}

		if sess := e.controller.currentSession(); sess != nil {
			go e.tick(ctx, sess)
		}
	}
}

// ForceRefresh schedules one immediate poll. Coalesces when one is already
// pending.
func (e *SyncEngine) ForceRefresh() {
	select {
	case e.force <- struct{}{}:
	default:
	}
}

func (e *SyncEngine) tick(ctx context.Context, sess *Session) {
	snap, err := sess.FetchSnapshot(ctx)
	e.controller.applySnapshot(sess, snap, err)
}
