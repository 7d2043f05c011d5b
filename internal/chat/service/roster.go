package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
	"github.com/aussiebroadwan/snug/internal/chat/store"
	"github.com/aussiebroadwan/snug/pkg/idx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// Snapshot defaults. MessageLimit bounds the snapshot payload; the client
// merges snapshots idempotently so serving a bounded tail is safe.
const (
	DefaultMessageLimit   = 500
	DefaultMaxMessageLen  = 2000
	DefaultPresenceWindow = 2 * time.Minute
)

// RosterService owns the shared chat state the polling endpoint serves: the
// online-user roster and the message log. Every read or write by an
// authenticated user also refreshes that user's presence row, which is what
// keeps the roster warm without a dedicated heartbeat.
type RosterService struct {
	Store          store.Store
	MessageLimit   int
	MaxMessageLen  int
	PresenceWindow time.Duration
}

// ChatSnapshot is the full current state, not a delta.
type ChatSnapshot struct {
	Users    []domain.Presence
	Messages []domain.Message
}

func (s *RosterService) messageLimit() int {
	if s.MessageLimit > 0 {
		return s.MessageLimit
	}
	return DefaultMessageLimit
}

func (s *RosterService) maxMessageLen() int {
	if s.MaxMessageLen > 0 {
		return s.MaxMessageLen
	}
	return DefaultMaxMessageLen
}

func (s *RosterService) presenceWindow() time.Duration {
	if s.PresenceWindow > 0 {
		return s.PresenceWindow
	}
	return DefaultPresenceWindow
}

// Snapshot returns the current roster and message tail, marking the viewer
// as seen first so they appear in their own snapshot.
func (s *RosterService) Snapshot(ctx context.Context, viewer string) (ChatSnapshot, error) {
	now := time.Now().UTC()

	if err := s.touch(ctx, viewer, now); err != nil {
		return ChatSnapshot{}, err
	}

	users, err := s.Store.Presence().ListActivePresence(ctx, now.Add(-s.presenceWindow()))
	if err != nil {
		return ChatSnapshot{}, fmt.Errorf("listing presence: %w", err)
	}

	messages, err := s.Store.Messages().ListRecentMessages(ctx, s.messageLimit())
	if err != nil {
		return ChatSnapshot{}, fmt.Errorf("listing messages: %w", err)
	}

	return ChatSnapshot{Users: users, Messages: messages}, nil
}

// Post validates and stores a chat message from the given sender. A message
// that fails validation is reported as not accepted rather than as an error:
// the client reconciles via a forced snapshot rather than retrying.
func (s *RosterService) Post(ctx context.Context, from, text string) (accepted bool, msg *domain.Message, err error) {
	now := time.Now().UTC()

	if err := s.touch(ctx, from, now); err != nil {
		return false, nil, err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) > s.maxMessageLen() {
		return false, nil, nil
	}

	stored := domain.Message{
		ID:        idx.New().String(),
		From:      from,
		Text:      trimmed,
		Timestamp: now.Unix(),
	}
	if err := s.Store.Messages().AppendMessage(ctx, stored); err != nil {
		return false, nil, fmt.Errorf("appending message: %w", err)
	}

	return true, &stored, nil
}

// Depart removes the user from the roster. Called on logout; idempotent, and
// best-effort from the client's point of view.
func (s *RosterService) Depart(ctx context.Context, username string) error {
	l := slogx.FromContext(ctx)
	if err := s.Store.Presence().DeletePresence(ctx, username); err != nil {
		l.Warn("failed to remove presence on logout", "username", username, "err", err)
		return err
	}
	return nil
}

func (s *RosterService) touch(ctx context.Context, username string, now time.Time) error {
	err := s.Store.Presence().UpsertPresence(ctx, domain.Presence{
		Username: username,
		Status:   "online",
		LastSeen: now,
	})
	if err != nil {
		return fmt.Errorf("refreshing presence: %w", err)
	}
	return nil
}
