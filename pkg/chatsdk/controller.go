package chatsdk

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseLoggedOut Phase = iota
	PhaseLoggingIn
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseLoggingIn:
		return "logging_in"
	case PhaseActive:
		return "active"
	default:
		return "logged_out"
	}
}

// Config configures a Controller.
type Config struct {
	BaseURL      string
	PollInterval time.Duration // defaults to DefaultPollInterval
	HTTPClient   *http.Client  // defaults to the SDK client's default
	Logger       *slog.Logger  // defaults to slog.Default()
}

// Controller owns the displayed state of a chat client: session lifecycle,
// roster, message history, peer selection and the compose box. All methods
// are safe for concurrent use.
//
// Every asynchronous continuation captures the *Session it started under and
// re-checks it against the current one before applying. A logout or re-login
// replaces the session pointer wholesale, so responses from a previous life
// compare unequal and are discarded without any cancellation plumbing.
type Controller struct {
	client *SDKClient
	logger *slog.Logger
	engine *SyncEngine

	mu       sync.Mutex
	phase    Phase
	session  *Session
	username string // kept across a failed login so the user can retry

	users         []UserPresence
	messages      []Message
	unstable      bool // last poll failed; displayed data may be behind
	lastRefreshed time.Time
	lastError     string

	selectedPeer string
	selectionGen uint64
	peerLoading  bool
	peer         *PeerDetails
	notice       string

	draft   string
	sending bool
}

// NewController creates a Controller. Call Run to start background polling.
func NewController(cfg Config) *Controller {
	client := NewSDKClient(cfg.BaseURL)
	if cfg.HTTPClient != nil {
		client.HTTPClient = cfg.HTTPClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{client: client, logger: logger}
	c.engine = newSyncEngine(c, cfg.PollInterval)
	return c
}

// Run starts the snapshot polling loop and blocks until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	c.engine.Run(ctx)
}

// ForceRefresh schedules one immediate out-of-band poll.
func (c *Controller) ForceRefresh() {
	c.engine.ForceRefresh()
}

// Login authenticates and seeds the displayed state from the login response.
// A Login while another Login is in flight is ignored. On failure the
// username is kept for retry and the error is both surfaced in the view and
// returned.
func (c *Controller) Login(ctx context.Context, username, password, otp string) error {
	c.mu.Lock()
	if c.phase != PhaseLoggedOut {
		c.mu.Unlock()
		return nil
	}
	c.phase = PhaseLoggingIn
	c.username = username
	c.lastError = ""
	c.mu.Unlock()

	sess, resp, err := c.client.Login(ctx, username, password, otp)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A logout raced the login call and already reset the state.
	if c.phase != PhaseLoggingIn {
		return nil
	}

	if err != nil {
		c.phase = PhaseLoggedOut
		c.lastError = err.Error()
		return err
	}

	c.phase = PhaseActive
	c.session = sess
	c.users = resp.Users
	c.messages = DedupeMessages(resp.Messages)
	c.unstable = false
	c.lastRefreshed = time.Now()
	return nil
}

// Logout resets the client state immediately and then tells the server,
// best-effort. The local transition is unconditional and completes before
// the network call: a new Login never has to wait for the server to
// acknowledge the old session ending. The server call failing only gets
// logged; the token expires on its own regardless.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	sess := c.session
	c.phase = PhaseLoggedOut
	c.session = nil
	c.username = ""
	c.users = nil
	c.messages = nil
	c.unstable = false
	c.lastError = ""
	c.selectedPeer = ""
	c.selectionGen++
	c.peerLoading = false
	c.peer = nil
	c.notice = ""
	c.draft = ""
	c.sending = false
	c.mu.Unlock()

	if sess == nil {
		return
	}
	if err := sess.Logout(ctx); err != nil {
		c.logger.Warn("logout notification failed", "err", err)
	}
}

// SetDraft replaces the compose box contents.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Send submits the current draft. The compose box clears immediately; a
// network failure restores the captured draft (unless the user already typed
// something new) and surfaces the error. A server rejection forces a full
// refresh instead, so the view reconverges on what the server actually holds.
// Only one send runs at a time; extra calls are no-ops.
func (c *Controller) Send(ctx context.Context) error {
	c.mu.Lock()
	if c.session == nil || c.sending {
		c.mu.Unlock()
		return nil
	}
	text := strings.TrimSpace(c.draft)
	if text == "" {
		c.mu.Unlock()
		return nil
	}
	captured := c.draft
	c.draft = ""
	c.sending = true
	sess := c.session
	c.mu.Unlock()

	resp, err := sess.SendChat(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if sess != c.session {
		return nil
	}
	c.sending = false

	if err != nil {
		if c.draft == "" {
			c.draft = captured
		}
		c.lastError = err.Error()
		return err
	}

	if resp.Accepted && resp.Message != nil {
		merged := make([]Message, 0, len(c.messages)+1)
		merged = append(merged, c.messages...)
		merged = append(merged, *resp.Message)
		c.messages = DedupeMessages(merged)
		c.unstable = false
		return nil
	}

	// Rejected: nothing was stored, resync to be sure.
	c.engine.ForceRefresh()
	return nil
}

// Select picks a peer to inspect and fetches their profile. Selecting while
// logged out, selecting nobody, or selecting yourself clears the panel. A
// selection made while a fetch is in flight wins: the older fetch's result
// is discarded when it lands.
func (c *Controller) Select(ctx context.Context, username string) error {
	c.mu.Lock()
	c.selectionGen++
	gen := c.selectionGen

	self := ""
	if c.session != nil {
		self = c.session.Profile().Username
	}
	if c.session == nil || username == "" || strings.EqualFold(username, self) {
		c.selectedPeer = ""
		c.peerLoading = false
		c.peer = nil
		c.notice = ""
		c.lastError = ""
		c.mu.Unlock()
		return nil
	}

	c.selectedPeer = username
	c.peerLoading = true
	c.peer = nil
	c.notice = ""
	c.lastError = ""
	sess := c.session
	c.mu.Unlock()

	details, err := sess.FetchPeerDetails(ctx, username)

	c.mu.Lock()
	defer c.mu.Unlock()
	if sess != c.session || gen != c.selectionGen {
		return nil
	}
	c.peerLoading = false

	if errors.Is(err, ErrNotFound) {
		// Valid empty state: the peer exists but published nothing, or
		// has gone offline. Informational, not an error.
		c.peer = &PeerDetails{Username: username}
		c.notice = username + " has no published details; they may be offline"
		return nil
	}
	if err != nil {
		c.peer = nil
		c.lastError = err.Error()
		return err
	}

	c.peer = details
	return nil
}

func (c *Controller) currentSession() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// applySnapshot folds one poll result into the displayed state. Results from
// a replaced session are dropped. A failed poll keeps the prior data on
// screen and only marks it unstable.
func (c *Controller) applySnapshot(sess *Session, snap *SnapshotResponse, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sess != c.session {
		return
	}

	if err != nil {
		c.unstable = true
		c.logger.Debug("snapshot poll failed", "err", err)
		return
	}

	c.users = snap.Users
	c.messages = DedupeMessages(snap.Messages)
	c.unstable = false
	c.lastRefreshed = time.Now()
}

// View is a point-in-time copy of the displayed state.
type View struct {
	Phase         Phase
	Username      string
	Users         []UserPresence
	Messages      []Message
	Unstable      bool
	LastRefreshed time.Time
	LastError     string

	SelectedPeer string
	PeerLoading  bool
	Peer         *PeerDetails
	Notice       string

	Draft   string
	Sending bool
}

// View snapshots the current state. Slices are copied; mutating the result
// does not affect the controller.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Phase:         c.phase,
		Username:      c.username,
		Users:         append([]UserPresence(nil), c.users...),
		Messages:      append([]Message(nil), c.messages...),
		Unstable:      c.unstable,
		LastRefreshed: c.lastRefreshed,
		LastError:     c.lastError,
		SelectedPeer:  c.selectedPeer,
		PeerLoading:   c.peerLoading,
		Notice:        c.notice,
		Draft:         c.draft,
		Sending:       c.sending,
	}
	if c.peer != nil {
		peer := *c.peer
		v.Peer = &peer
	}
	return v
}
