package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/stretchr/testify/require"
)

func TestLoginSeedsClientInOneRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	_, resp := env.registerAndLogin(t, "alice")

	require.NotEmpty(t, resp.Token)
	require.Equal(t, int(testTokenTTL.Seconds()), resp.ExpiresIn)
	require.Equal(t, "alice", resp.Profile.Username)
	require.NotEmpty(t, resp.Profile.ID)

	// The login response already contains the roster with the caller on it.
	require.Len(t, resp.Users, 1)
	require.Equal(t, "alice", resp.Users[0].Username)
	require.Empty(t, resp.Messages)
}

func TestTwoClientsConvergeOnSharedHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, _ := env.registerAndLogin(t, "alice")
	bob, _ := env.registerAndLogin(t, "bob")

	sent, err := alice.SendChat(ctx, "hello from alice")
	require.NoError(t, err)
	require.True(t, sent.Accepted)
	require.NotNil(t, sent.Message)
	require.Equal(t, "alice", sent.Message.From)

	// Bob's next poll sees both users and alice's message.
	snap, err := bob.FetchSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Users, 2)
	require.Len(t, snap.Messages, 1)
	require.Equal(t, "hello from alice", snap.Messages[0].Text)

	// Alice's poll returns the same message; merging it again client-side
	// changes nothing.
	aliceSnap, err := alice.FetchSnapshot(ctx)
	require.NoError(t, err)
	merged := chatsdk.DedupeMessages(append(aliceSnap.Messages, *sent.Message))
	require.Equal(t, len(aliceSnap.Messages), len(merged))
}

func TestRejectedSendStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, _ := env.registerAndLogin(t, "alice")

	resp, err := alice.SendChat(ctx, "   ")
	require.NoError(t, err)
	require.False(t, resp.Accepted)
	require.Nil(t, resp.Message)

	snap, err := alice.FetchSnapshot(ctx)
	require.NoError(t, err)
	require.Empty(t, snap.Messages)
}

func TestLogoutRemovesUserFromRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, _ := env.registerAndLogin(t, "alice")
	bob, _ := env.registerAndLogin(t, "bob")

	require.NoError(t, bob.Logout(ctx))

	snap, err := alice.FetchSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Users, 1)
	require.Equal(t, "alice", snap.Users[0].Username)

	// Logout is idempotent.
	require.NoError(t, bob.Logout(ctx))
}

func TestPeerDetailsLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, _ := env.registerAndLogin(t, "alice")
	bob, _ := env.registerAndLogin(t, "bob")

	// Before bob publishes anything, his card 404s: a valid empty state.
	_, err := alice.FetchPeerDetails(ctx, "bob")
	require.ErrorIs(t, err, chatsdk.ErrNotFound)

	require.NoError(t, bob.PublishProfile(ctx, chatsdk.PeerDetails{
		Nickname: "Bobby",
		Tagline:  "just here for the chats",
	}))

	details, err := alice.FetchPeerDetails(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "bob", details.Username)
	require.Equal(t, "Bobby", details.Nickname)
	require.False(t, details.UpdatedAt.IsZero())

	// Republishing replaces the card wholesale.
	require.NoError(t, bob.PublishProfile(ctx, chatsdk.PeerDetails{Nickname: "Robert"}))
	details, err = alice.FetchPeerDetails(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "Robert", details.Nickname)
	require.Empty(t, details.Tagline)
}

func TestControllerConvergesAgainstRealServer(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice, _ := env.registerAndLogin(t, "alice")
	env.registerAndLogin(t, "bob")

	c := chatsdk.NewController(chatsdk.Config{
		BaseURL:      env.Server.URL,
		PollInterval: 20 * time.Millisecond,
	})
	require.NoError(t, c.Login(ctx, "bob", testPassword, ""))
	go c.Run(ctx)

	// Bob sends through the controller; alice posts directly.
	c.SetDraft("from the controller")
	require.NoError(t, c.Send(ctx))

	_, err := alice.SendChat(ctx, "from alice")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		v := c.View()
		if len(v.Messages) != 2 || len(v.Users) != 2 {
			return false
		}
		texts := map[string]bool{}
		for _, m := range v.Messages {
			texts[m.Text] = true
		}
		return texts["from the controller"] && texts["from alice"]
	}, 2*time.Second, 10*time.Millisecond)

	c.Logout(ctx)
	require.Equal(t, chatsdk.PhaseLoggedOut, c.View().Phase)
}

func TestMFAEnrollmentChangesLoginRequirements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sess, _ := env.registerAndLogin(t, "alice")

	enrollment, err := sess.EnrollMFA(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.OTPAuthURL, "otpauth://")

	// Not activated yet: password-only login still works.
	_, _, err = env.SDK.Login(ctx, "alice", testPassword, "")
	require.NoError(t, err)

	code := totpCode(t, enrollment.Secret)
	require.NoError(t, sess.ActivateMFA(ctx, code))

	// Now a code is demanded.
	_, _, err = env.SDK.Login(ctx, "alice", testPassword, "")
	var apiErr *chatsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, chatsdk.ErrorCodeOTPRequired, apiErr.Code)
}
