package http

import (
	"net/http"

	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/aussiebroadwan/snug/pkg/httpx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// LogoutHandler serves POST /v1/logout.
type LogoutHandler struct {
	RosterService *service.RosterService
}

// ServeHTTP godoc
//
//	@Summary		Log out
//	@Description	Drops the caller's presence row so they leave the roster promptly instead of aging out. Idempotent; tokens are stateless and expire on their own.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"Presence removed"
//	@Failure		401	{object}	chatsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		chatsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.RosterService.Depart(ctx, principal.Username); err != nil {
		// Best-effort from the client's point of view; the row ages out
		// anyway.
		log.Warn("logout departure failed", "username", principal.Username, "err", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
