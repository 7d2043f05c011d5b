package chatsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated connection to the chat service. Sessions are
// immutable: the token never rotates in place, so a *Session pointer doubles
// as a stable identity for the login it came from. The Controller relies on
// that to discard responses that raced a logout or re-login.
type Session struct {
	client  *SDKClient
	token   string
	profile UserProfile
}

// Profile returns the account this session was minted for.
func (s *Session) Profile() UserProfile { return s.profile }

// Token returns the raw bearer token.
func (s *Session) Token() string { return s.token }

// FetchSnapshot retrieves the full current roster and message tail.
func (s *Session) FetchSnapshot(ctx context.Context) (*SnapshotResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/snapshot", s.token, nil)
	if err != nil {
		return nil, err
	}

	var out SnapshotResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendChat submits one message. Accepted=false with a nil error means the
// server rejected the text as invalid; nothing was stored.
func (s *Session) SendChat(ctx context.Context, text string) (*SendChatResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/messages", s.token, SendChatRequest{Text: text})
	if err != nil {
		return nil, err
	}

	var out SendChatResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchPeerDetails retrieves another user's published profile. A peer with
// no profile yields ErrNotFound, which callers should treat as an empty
// state rather than a failure.
func (s *Session) FetchPeerDetails(ctx context.Context, username string) (*PeerDetails, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/peers/"+url.PathEscape(username), s.token, nil)
	if err != nil {
		return nil, err
	}

	var out PeerDetails
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishProfile replaces this account's profile card wholesale. The
// Username field is taken from the session, not the argument.
func (s *Session) PublishProfile(ctx context.Context, details PeerDetails) error {
	resp, err := s.client.doJSON(ctx, http.MethodPut, "/v1/profile", s.token, details)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Logout tells the server to drop this session's presence. Idempotent and
// best-effort; the token simply expires either way.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/logout", s.token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// EnrollMFA stages a TOTP secret for this account.
func (s *Session) EnrollMFA(ctx context.Context) (*MFAEnrollResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/mfa/enroll", s.token, nil)
	if err != nil {
		return nil, err
	}

	var out MFAEnrollResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActivateMFA verifies one code against the staged secret and enables MFA.
func (s *Session) ActivateMFA(ctx context.Context, code string) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/mfa/activate", s.token, MFAActivateRequest{Code: code})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
