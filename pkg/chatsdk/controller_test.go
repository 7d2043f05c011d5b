package chatsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeChatServer speaks just enough of the wire protocol for controller
// tests. Handlers can be swapped per test.
type fakeChatServer struct {
	*httptest.Server

	loginCalls  atomic.Int64
	logoutCalls atomic.Int64

	snapshot func() SnapshotResponse
	send     func(text string) SendChatResponse
	peer     func(username string) (*PeerDetails, int)

	// logoutGate, when set before any request, holds the logout response
	// until closed so tests can observe the client mid-logout.
	logoutGate chan struct{}
}

func newFakeChatServer(t *testing.T) *fakeChatServer {
	t.Helper()

	f := &fakeChatServer{
		snapshot: func() SnapshotResponse { return SnapshotResponse{} },
		send: func(text string) SendChatResponse {
			return SendChatResponse{Accepted: true, Message: &Message{From: "alice", Text: text, Timestamp: 100}}
		},
		peer: func(username string) (*PeerDetails, int) { return nil, http.StatusNotFound },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/login", func(w http.ResponseWriter, r *http.Request) {
		f.loginCalls.Add(1)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "good" {
			ErrInvalidCredentials.WriteError(w)
			return
		}
		writeTestJSON(w, http.StatusOK, LoginResponse{
			Token:     "token-" + req.Username,
			ExpiresIn: 3600,
			Profile:   UserProfile{ID: "u1", Username: req.Username},
			Users:     []UserPresence{{Username: req.Username, Status: "online"}},
			Messages: []Message{
				{From: "bob", Text: "welcome", Timestamp: 50},
				{From: "bob", Text: "welcome", Timestamp: 50},
			},
		})
	})
	mux.HandleFunc("GET /v1/snapshot", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, f.snapshot())
	})
	mux.HandleFunc("POST /v1/messages", func(w http.ResponseWriter, r *http.Request) {
		var req SendChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeTestJSON(w, http.StatusOK, f.send(req.Text))
	})
	mux.HandleFunc("GET /v1/peers/{username}", func(w http.ResponseWriter, r *http.Request) {
		details, status := f.peer(r.PathValue("username"))
		if status != http.StatusOK {
			ErrPeerNotFound.WriteError(w)
			return
		}
		writeTestJSON(w, http.StatusOK, details)
	})
	mux.HandleFunc("POST /v1/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls.Add(1)
		if f.logoutGate != nil {
			<-f.logoutGate
		}
		w.WriteHeader(http.StatusNoContent)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestController(t *testing.T) (*Controller, *fakeChatServer) {
	t.Helper()
	srv := newFakeChatServer(t)
	return NewController(Config{BaseURL: srv.URL}), srv
}

func TestLoginSeedsStateAndDedupes(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))

	v := c.View()
	require.Equal(t, PhaseActive, v.Phase)
	require.Equal(t, "alice", v.Username)
	require.Len(t, v.Users, 1)
	// The duplicate welcome message collapsed during seeding.
	require.Len(t, v.Messages, 1)
	require.False(t, v.Unstable)
}

func TestLoginFailureKeepsUsernameForRetry(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	err := c.Login(ctx, "alice", "wrong", "")
	require.ErrorIs(t, err, ErrUnauthorized)

	v := c.View()
	require.Equal(t, PhaseLoggedOut, v.Phase)
	require.Equal(t, "alice", v.Username)
	require.NotEmpty(t, v.LastError)
	require.Nil(t, v.Messages)
}

func TestLoginWhileActiveIsIgnored(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	require.NoError(t, c.Login(ctx, "mallory", "good", ""))

	require.Equal(t, int64(1), srv.loginCalls.Load())
	require.Equal(t, "alice", c.View().Username)
}

func TestLogoutClearsStateAndNotifiesServer(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	c.SetDraft("half-typed")
	c.Logout(ctx)

	v := c.View()
	require.Equal(t, PhaseLoggedOut, v.Phase)
	require.Empty(t, v.Username)
	require.Empty(t, v.Users)
	require.Empty(t, v.Messages)
	require.Empty(t, v.Draft)
	require.Empty(t, v.SelectedPeer)
	require.Equal(t, int64(1), srv.logoutCalls.Load())
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestController(t)

	c.Logout(ctx)
	c.Logout(ctx)
	require.Equal(t, int64(0), srv.logoutCalls.Load())
}

func TestStaleSnapshotFromPreviousSessionIsDiscarded(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	old := c.currentSession()

	c.Logout(ctx)
	require.NoError(t, c.Login(ctx, "alice", "good", ""))

	// A poll started under the old session lands late.
	c.applySnapshot(old, &SnapshotResponse{
		Messages: []Message{{From: "ghost", Text: "stale", Timestamp: 999}},
	}, nil)

	for _, m := range c.View().Messages {
		require.NotEqual(t, "ghost", m.From)
	}
}

func TestSnapshotFailureMarksUnstableKeepsData(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	before := c.View().Messages

	c.applySnapshot(c.currentSession(), nil, context.DeadlineExceeded)

	v := c.View()
	require.True(t, v.Unstable)
	require.Equal(t, before, v.Messages)

	// The next successful poll clears the flag.
	c.applySnapshot(c.currentSession(), &SnapshotResponse{Messages: before}, nil)
	require.False(t, c.View().Unstable)
}

func TestSendMergesAckAndClearsDraft(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	c.SetDraft("hello there")
	require.NoError(t, c.Send(ctx))

	v := c.View()
	require.Empty(t, v.Draft)
	require.False(t, v.Sending)

	var found bool
	for _, m := range v.Messages {
		if m.Text == "hello there" {
			found = true
		}
	}
	require.True(t, found, "acked message should be merged into history")
}

func TestSendEmptyDraftIsNoOp(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	c.SetDraft("   ")
	require.NoError(t, c.Send(ctx))
	require.Equal(t, "   ", c.View().Draft)
}

func TestSendFailureRestoresDraft(t *testing.T) {
	ctx := context.Background()
	srv := newFakeChatServer(t)
	c := NewController(Config{BaseURL: srv.URL})

	require.NoError(t, c.Login(ctx, "alice", "good", ""))

	// Break the transport after login so the send itself fails.
	c.client.BaseURL = "http://127.0.0.1:1"

	c.SetDraft("do not lose me")
	require.Error(t, c.Send(ctx))

	v := c.View()
	require.Equal(t, "do not lose me", v.Draft)
	require.NotEmpty(t, v.LastError)
	require.False(t, v.Sending)
}

func TestSendRejectionForcesRefresh(t *testing.T) {
	ctx := context.Background()
	srv := newFakeChatServer(t)
	srv.send = func(string) SendChatResponse { return SendChatResponse{Accepted: false} }
	c := NewController(Config{BaseURL: srv.URL})

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	c.SetDraft("rejected text")
	require.NoError(t, c.Send(ctx))

	require.Len(t, c.engine.force, 1, "a rejected send should queue an immediate resync")
}

func TestSelectPeerWithProfile(t *testing.T) {
	ctx := context.Background()
	srv := newFakeChatServer(t)
	srv.peer = func(username string) (*PeerDetails, int) {
		return &PeerDetails{Username: username, Nickname: "Bobby"}, http.StatusOK
	}
	c := NewController(Config{BaseURL: srv.URL})

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	require.NoError(t, c.Select(ctx, "bob"))

	v := c.View()
	require.Equal(t, "bob", v.SelectedPeer)
	require.False(t, v.PeerLoading)
	require.NotNil(t, v.Peer)
	require.Equal(t, "Bobby", v.Peer.Nickname)
	require.Empty(t, v.Notice)
}

func TestSelectPeerWithoutProfileGivesNoticeNotError(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	require.NoError(t, c.Select(ctx, "bob"))

	v := c.View()
	require.NotNil(t, v.Peer)
	require.Equal(t, "bob", v.Peer.Username)
	require.Empty(t, v.Peer.Nickname)
	require.NotEmpty(t, v.Notice)
	require.Empty(t, v.LastError)
}

func TestSelectSelfClearsPanel(t *testing.T) {
	ctx := context.Background()
	srv := newFakeChatServer(t)
	srv.peer = func(username string) (*PeerDetails, int) {
		return &PeerDetails{Username: username}, http.StatusOK
	}
	c := NewController(Config{BaseURL: srv.URL})

	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	require.NoError(t, c.Select(ctx, "bob"))
	require.NoError(t, c.Select(ctx, "Alice"))

	v := c.View()
	require.Empty(t, v.SelectedPeer)
	require.Nil(t, v.Peer)
}

func TestSelectClearsErrorFromPreviousFetch(t *testing.T) {
	ctx := context.Background()
	srv := newFakeChatServer(t)
	srv.peer = func(username string) (*PeerDetails, int) {
		return &PeerDetails{Username: username, Nickname: "nick-" + username}, http.StatusOK
	}
	c := NewController(Config{BaseURL: srv.URL})

	require.NoError(t, c.Login(ctx, "alice", "good", ""))

	good := c.client.BaseURL
	c.client.BaseURL = "http://127.0.0.1:1"
	require.Error(t, c.Select(ctx, "bob"))
	require.NotEmpty(t, c.View().LastError)

	// Once the transport recovers, a fresh selection must not drag the old
	// failure along.
	c.client.BaseURL = good
	require.NoError(t, c.Select(ctx, "carol"))

	v := c.View()
	require.Empty(t, v.LastError)
	require.NotNil(t, v.Peer)
	require.Equal(t, "nick-carol", v.Peer.Nickname)
}

func TestSelectNothingClearsErrorFromPreviousFetch(t *testing.T) {
	ctx := context.Background()
	srv := newFakeChatServer(t)
	c := NewController(Config{BaseURL: srv.URL})

	require.NoError(t, c.Login(ctx, "alice", "good", ""))

	c.client.BaseURL = "http://127.0.0.1:1"
	require.Error(t, c.Select(ctx, "bob"))
	require.NotEmpty(t, c.View().LastError)

	require.NoError(t, c.Select(ctx, ""))

	v := c.View()
	require.Empty(t, v.LastError)
	require.Empty(t, v.SelectedPeer)
	require.Nil(t, v.Peer)
}

func TestLogoutDoesNotBlockRelogin(t *testing.T) {
	ctx := context.Background()
	srv := newFakeChatServer(t)
	srv.logoutGate = make(chan struct{})
	c := NewController(Config{BaseURL: srv.URL})

	require.NoError(t, c.Login(ctx, "alice", "good", ""))

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Logout(ctx)
	}()

	// The local transition completes without waiting for the server.
	require.Eventually(t, func() bool {
		return c.View().Phase == PhaseLoggedOut
	}, time.Second, 5*time.Millisecond)

	// A login submitted while the logout call is still in flight sticks.
	require.NoError(t, c.Login(ctx, "alice", "good", ""))
	require.Equal(t, PhaseActive, c.View().Phase)

	close(srv.logoutGate)
	<-done
	require.Equal(t, PhaseActive, c.View().Phase)
}

func TestSelectWhileLoggedOutIsNoOp(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)

	require.NoError(t, c.Select(ctx, "bob"))
	v := c.View()
	require.Empty(t, v.SelectedPeer)
	require.Nil(t, v.Peer)
}
