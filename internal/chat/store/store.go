package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers accidentally opening transactions within
// transactions.
type Store interface {
	Users() Users
	Messages() Messages
	Presence() Presence
	Profiles() Profiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn returns
	// an error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername looks a user up case-insensitively. This is the
	// lookup the per-request auth gate uses to resolve token subjects.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists on a username collision.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateMFASecret stages a TOTP secret for a user prior to activation.
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// EnableMFA marks TOTP as active for a user (sets mfa_enabled timestamp).
	EnableMFA(ctx context.Context, userID string) error

	// DisableMFA clears mfa_enabled and mfa_secret.
	DisableMFA(ctx context.Context, userID string) error
}

type Messages interface {
	// AppendMessage stores an accepted chat message.
	AppendMessage(ctx context.Context, m domain.Message) error

	// ListRecentMessages returns up to limit messages ordered ascending by
	// timestamp then id, i.e. the full snapshot the polling endpoint serves.
	ListRecentMessages(ctx context.Context, limit int) ([]domain.Message, error)

	// TrimMessages deletes everything but the newest keep messages.
	// Housekeeping only.
	TrimMessages(ctx context.Context, keep int) error
}

type Presence interface {
	// UpsertPresence records that a user was seen now-ish.
	UpsertPresence(ctx context.Context, p domain.Presence) error

	// DeletePresence removes a user from the roster (logout).
	DeletePresence(ctx context.Context, username string) error

	// ListActivePresence returns users seen at or after the cutoff, ordered
	// by username.
	ListActivePresence(ctx context.Context, cutoff time.Time) ([]domain.Presence, error)

	// DeleteStalePresence reaps rows last seen before the cutoff.
	// Housekeeping only.
	DeleteStalePresence(ctx context.Context, cutoff time.Time) error
}

type Profiles interface {
	// GetProfileByUsername returns a published peer profile. ErrNotFound is
	// an ordinary outcome here, not a failure: most users never publish one.
	GetProfileByUsername(ctx context.Context, username string) (domain.PeerProfile, error)

	// UpsertProfile publishes or replaces a user's peer profile.
	UpsertProfile(ctx context.Context, p domain.PeerProfile) error
}
