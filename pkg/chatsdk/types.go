package chatsdk

import "time"

// Message is a single chat message. Identity on the wire is the
// (Timestamp, From, Text) triple; the server-side row ID is carried for
// reference only and never participates in client-side merging.
type Message struct {
	ID        string `json:"id,omitempty"`
	From      string `json:"from"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// UserPresence is one entry of the online-user roster.
type UserPresence struct {
	Username string    `json:"username"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
}

// UserProfile is the authenticated caller's own account summary.
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// PeerDetails is another user's published profile card. All fields besides
// Username are optional; a peer with no published card yields 404, which the
// SDK surfaces as ErrNotFound.
type PeerDetails struct {
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname,omitempty"`
	Tagline   string    `json:"tagline,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// LoginRequest is the body of POST /v1/login. OTP is required only for
// accounts with TOTP enabled.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

// LoginResponse seeds a fresh client in one round trip: the bearer token plus
// an initial snapshot of the roster and recent history.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresIn int            `json:"expires_in"` // seconds
	Profile   UserProfile    `json:"profile"`
	Users     []UserPresence `json:"users"`
	Messages  []Message      `json:"messages"`
}

// SnapshotResponse is the full current state, not a delta. Clients replace
// their roster wholesale and merge messages idempotently.
type SnapshotResponse struct {
	Users    []UserPresence `json:"users"`
	Messages []Message      `json:"messages"`
}

// SendChatRequest is the body of POST /v1/messages.
type SendChatRequest struct {
	Text string `json:"text"`
}

// SendChatResponse acknowledges a send. Accepted=false means the text failed
// validation server-side; the message was not stored and Message is nil.
type SendChatResponse struct {
	Accepted bool     `json:"accepted"`
	Message  *Message `json:"message,omitempty"`
}

// RegisterRequest is the body of POST /v1/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// RegisterResponse is the created account summary.
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MFAEnrollResponse carries the staged TOTP secret. MFA is not active until
// one code is verified via /v1/mfa/activate.
type MFAEnrollResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// MFAActivateRequest is the body of POST /v1/mfa/activate.
type MFAActivateRequest struct {
	Code string `json:"code"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// ErrorResponse is the generic error body every non-2xx response carries.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
