package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/aussiebroadwan/snug/pkg/httpx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// LoginHandler serves POST /v1/login.
type LoginHandler struct {
	LoginService  *service.LoginService
	RosterService *service.RosterService
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Authenticates a username/password pair (plus a TOTP code when the account has MFA enabled) and returns a bearer token together with an initial roster and message snapshot, so a fresh client needs no follow-up fetch before rendering.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chatsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	chatsdk.LoginResponse	"token, expires_in, profile, users, messages"
//	@Failure		400		{object}	chatsdk.ErrorResponse	"Malformed or empty fields"
//	@Failure		401		{object}	chatsdk.ErrorResponse	"Bad credentials or missing OTP"
//	@Failure		500		{object}	chatsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req chatsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		chatsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.LoginService.Login(ctx, req.Username, req.Password, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			chatsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrOTPRequired):
			chatsdk.ErrOTPRequired.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			chatsdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			chatsdk.ErrServerError.WriteError(w)
		}
		return
	}

	snap, err := h.RosterService.Snapshot(ctx, result.User.Username)
	if err != nil {
		log.Error("seeding login snapshot failed", "err", err)
		chatsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, chatsdk.LoginResponse{
		Token:     result.Token,
		ExpiresIn: int(result.ExpiresIn.Seconds()),
		Profile: chatsdk.UserProfile{
			ID:       result.User.ID,
			Username: result.User.Username,
			Email:    result.User.Email,
		},
		Users:    toWireUsers(snap.Users),
		Messages: toWireMessages(snap.Messages),
	})
}
