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

// RegisterHandler serves POST /v1/register.
type RegisterHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Register an account
//	@Description	Creates a new account. Validation here is shallow: non-empty username and password within length bounds. Registration does not log in; follow with /v1/login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chatsdk.RegisterRequest		true	"New account"
//	@Success		201		{object}	chatsdk.RegisterResponse	"id, username"
//	@Failure		400		{object}	chatsdk.ErrorResponse		"Malformed or invalid fields"
//	@Failure		409		{object}	chatsdk.ErrorResponse		"Username already taken"
//	@Failure		500		{object}	chatsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req chatsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		chatsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.LoginService.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			chatsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrUsernameTaken):
			chatsdk.ErrUsernameTaken.WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			chatsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, chatsdk.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
