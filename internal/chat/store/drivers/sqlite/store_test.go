package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
	"github.com/aussiebroadwan/snug/internal/chat/store"
	"github.com/aussiebroadwan/snug/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsersRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{
		ID:           idx.New().String(),
		Username:     "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", byID.Username)
	require.Nil(t, byID.MFAEnabled)
	require.Nil(t, byID.MFASecret)

	// Username lookup is case-insensitive.
	byName, err := s.Users().GetUserByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	_, err = s.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first := domain.User{ID: idx.New().String(), Username: "bob", PasswordHash: "x"}
	require.NoError(t, s.Users().CreateUser(ctx, first))

	// Collides case-insensitively.
	dup := domain.User{ID: idx.New().String(), Username: "BOB", PasswordHash: "x"}
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
}

func TestUserMFAFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := domain.User{ID: idx.New().String(), Username: "carol", PasswordHash: "x"}
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().UpdateMFASecret(ctx, u.ID, "JBSWY3DPEHPK3PXP"))
	require.NoError(t, s.Users().EnableMFA(ctx, u.ID))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MFAEnabled)
	require.NotNil(t, got.MFASecret)
	require.Equal(t, "JBSWY3DPEHPK3PXP", *got.MFASecret)

	require.NoError(t, s.Users().DisableMFA(ctx, u.ID))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.MFAEnabled)
	require.Nil(t, got.MFASecret)
}

func TestMessagesAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Now().Unix()
	for i, text := range []string{"first", "second", "third"} {
		m := domain.Message{
			ID:        idx.New().String(),
			From:      "alice",
			Text:      text,
			Timestamp: base + int64(i),
		}
		require.NoError(t, s.Messages().AppendMessage(ctx, m))
	}

	msgs, err := s.Messages().ListRecentMessages(ctx, 100)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "first", msgs[0].Text)
	require.Equal(t, "third", msgs[2].Text)

	// Limit keeps the newest rows but still serves them oldest-first.
	tail, err := s.Messages().ListRecentMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	require.Equal(t, "second", tail[0].Text)
	require.Equal(t, "third", tail[1].Text)
}

func TestMessagesTrim(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Now().Unix()
	for i := range 10 {
		m := domain.Message{
			ID:        idx.New().String(),
			From:      "bot",
			Text:      "spam",
			Timestamp: base + int64(i),
		}
		require.NoError(t, s.Messages().AppendMessage(ctx, m))
	}

	require.NoError(t, s.Messages().TrimMessages(ctx, 4))

	msgs, err := s.Messages().ListRecentMessages(ctx, 100)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	require.Equal(t, base+6, msgs[0].Timestamp)
}

func TestPresenceLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	require.NoError(t, s.Presence().UpsertPresence(ctx, domain.Presence{
		Username: "alice", Status: "online", LastSeen: now,
	}))
	require.NoError(t, s.Presence().UpsertPresence(ctx, domain.Presence{
		Username: "bob", Status: "online", LastSeen: now.Add(-time.Hour),
	}))

	active, err := s.Presence().ListActivePresence(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "alice", active[0].Username)

	// Upsert replaces, never duplicates.
	require.NoError(t, s.Presence().UpsertPresence(ctx, domain.Presence{
		Username: "alice", Status: "away", LastSeen: now.Add(time.Second),
	}))
	active, err = s.Presence().ListActivePresence(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "away", active[0].Status)

	require.NoError(t, s.Presence().DeleteStalePresence(ctx, now.Add(-time.Minute)))
	require.NoError(t, s.Presence().DeletePresence(ctx, "alice"))

	active, err = s.Presence().ListActivePresence(ctx, now.Add(-2*time.Hour))
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestProfilesUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Profiles().GetProfileByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Profiles().UpsertProfile(ctx, domain.PeerProfile{
		Username: "alice", Nickname: "Al", Tagline: "hello",
	}))

	p, err := s.Profiles().GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Al", p.Nickname)

	require.NoError(t, s.Profiles().UpsertProfile(ctx, domain.PeerProfile{
		Username: "alice", Nickname: "Allie", Tagline: "hi",
	}))
	p, err = s.Profiles().GetProfileByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "Allie", p.Nickname)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	wantErr := store.ErrAlreadyExists
	err := s.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{ID: idx.New().String(), Username: "dave", PasswordHash: "x"}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	_, err = s.Users().GetUserByUsername(ctx, "dave")
	require.ErrorIs(t, err, store.ErrNotFound)
}
