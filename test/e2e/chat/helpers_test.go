package chat_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/snug/internal/chat/http"
	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/internal/chat/store"
	"github.com/aussiebroadwan/snug/internal/chat/store/drivers/sqlite"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/aussiebroadwan/snug/pkg/jwtx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

/*
 * End-to-end tests run the full HTTP stack in process: real router, real
 * middleware chains, real services, in-memory SQLite. Only the listener is
 * synthetic (httptest).
 */

const (
	testPassword = "Sn0g-e2e-Pa55!"
	testTokenTTL = time.Hour
)

var testSigningKey = []byte("e2e-signing-key-must-be-32-bytes")

// testEnv is one running chat service instance plus handles for tests to
// reach behind the HTTP API when needed.
type testEnv struct {
	Server   *httptest.Server
	SDK      *chatsdk.SDKClient
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSigningKey)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSigningKey)
	require.NoError(t, err)

	const issuer = "snug-e2e"
	logger := slogx.New(slogx.Config{Service: "snug-e2e", Level: "error", Format: "text"})

	tokens := &service.TokenService{Signer: signer, Issuer: issuer, AccessTTL: testTokenTTL}

	router := httpapi.NewRouter(verifier, "e2e", st, logger)
	router.LoginService = &service.LoginService{Store: st, Tokens: tokens}
	router.RosterService = &service.RosterService{Store: st}
	router.ProfileService = &service.ProfileService{Store: st}
	router.MFAService = &service.MFAService{Store: st, Issuer: issuer}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		Server:   srv,
		SDK:      chatsdk.NewSDKClient(srv.URL),
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   issuer,
	}
}

// registerAndLogin creates an account and returns an authenticated session.
func (env *testEnv) registerAndLogin(t *testing.T, username string) (*chatsdk.Session, *chatsdk.LoginResponse) {
	t.Helper()
	ctx := context.Background()

	_, err := env.SDK.Register(ctx, chatsdk.RegisterRequest{
		Username: username,
		Password: testPassword,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)

	sess, resp, err := env.SDK.Login(ctx, username, testPassword, "")
	require.NoError(t, err)
	return sess, resp
}

// totpCode derives the current TOTP code for a staged secret.
func totpCode(t *testing.T, secret string) string {
	t.Helper()

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

// mintToken signs an arbitrary token against the test key, for forging
// expired or mismatched tokens.
func (env *testEnv) mintToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()

	claims := jwtx.NewAccessClaims(subject, "", env.Issuer, ttl, time.Now().Add(-time.Minute))
	token, err := env.Signer.Sign(claims)
	require.NoError(t, err)
	return token
}
