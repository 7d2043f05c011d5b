package chatsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds every SDK request. It sits well below the
// default poll interval so a hung request cannot stack up behind the next
// tick indefinitely.
const DefaultRequestTimeout = 5 * time.Second

// SDKClient is a client for the Snug chat service. It covers the
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a chat service client with the default timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
	}
}

// Login authenticates and returns the seeded session: the bearer token plus
// the initial roster and message history. otp may be empty unless the account
// has TOTP enabled; a missing-but-required code fails with ErrorCodeOTPRequired.
func (c *SDKClient) Login(ctx context.Context, username, password, otp string) (*Session, *LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/login", "", LoginRequest{
		Username: username,
		Password: password,
		OTP:      otp,
	})
	if err != nil {
		return nil, nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, nil, err
	}

	return &Session{client: c, token: out.Token, profile: out.Profile}, &out, nil
}

// Register creates a new account. It does not log in; follow with Login.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/register", "", req)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez reports whether the service is up.
func (c *SDKClient) Livez(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", "", nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
