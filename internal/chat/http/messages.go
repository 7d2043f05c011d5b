package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/aussiebroadwan/snug/pkg/httpx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// MessagesHandler serves POST /v1/messages.
type MessagesHandler struct {
	RosterService *service.RosterService
}

// ServeHTTP godoc
//
//	@Summary		Send a message
//	@Description	Stores one chat message from the caller. Text that fails validation (empty or oversize) is reported as accepted=false with a 200 status rather than an error; nothing is stored and the client reconciles via its next snapshot.
//	@Tags			Chat
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chatsdk.SendChatRequest		true	"Message text"
//	@Success		200		{object}	chatsdk.SendChatResponse	"accepted, message"
//	@Failure		400		{object}	chatsdk.ErrorResponse		"Malformed body"
//	@Failure		401		{object}	chatsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500		{object}	chatsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/messages [post].
func (h *MessagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		chatsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req chatsdk.SendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		chatsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	accepted, msg, err := h.RosterService.Post(ctx, principal.Username, req.Text)
	if err != nil {
		log.Error("message post failed", "err", err)
		chatsdk.ErrServerError.WriteError(w)
		return
	}

	resp := chatsdk.SendChatResponse{Accepted: accepted}
	if msg != nil {
		wire := toWireMessage(*msg)
		resp.Message = &wire
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, resp)
}
