package chatsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/snug/pkg/httpx"
)

// Error codes shared between the server handlers and the SDK.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeOTPRequired        = "otp_required"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeUsernameTaken      = "username_taken"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// Sentinels for the failure classes callers branch on. APIError matches them
// through errors.Is, so a caller never needs to inspect status codes.
var (
	// ErrNotFound marks a 404. For peer lookups this is a valid empty
	// state (the peer has no published profile), not a failure.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a 401: missing, invalid, or expired token, or
	// bad credentials at login.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is an error response from the chat service. It is used both by
// the server handlers (to write responses) and by the SDK (to represent
// failures).
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is lets errors.Is match the sentinel failure classes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	// ErrOTPRequired is returned when the account has TOTP enabled and the
	// login request carried no code. The client should prompt and retry.
	ErrOTPRequired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeOTPRequired,
		Description: "a one-time code is required for this account",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrUsernameTaken = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeUsernameTaken,
		Description: "that username is already registered",
	}

	ErrPeerNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "no profile published for that user",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into a typed *APIError. The
// body is best-effort; a response with no parseable error body still yields
// an APIError carrying the status code so errors.Is keeps working.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
