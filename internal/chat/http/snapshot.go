package http

import (
	"net/http"

	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/aussiebroadwan/snug/pkg/httpx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// SnapshotHandler serves GET /v1/snapshot, the polling endpoint.
type SnapshotHandler struct {
	RosterService *service.RosterService
}

// ServeHTTP godoc
//
//	@Summary		Fetch the current chat state
//	@Description	Returns the full online-user roster and recent message tail. Always a complete snapshot, never a delta; clients replace their roster wholesale and merge messages idempotently. Requesting a snapshot also refreshes the caller's presence.
//	@Tags			Chat
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	chatsdk.SnapshotResponse	"users, messages"
//	@Failure		401	{object}	chatsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500	{object}	chatsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/snapshot [get].
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		chatsdk.ErrInvalidToken.WriteError(w)
		return
	}

	snap, err := h.RosterService.Snapshot(ctx, principal.Username)
	if err != nil {
		log.Error("snapshot failed", "err", err)
		chatsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, chatsdk.SnapshotResponse{
		Users:    toWireUsers(snap.Users),
		Messages: toWireMessages(snap.Messages),
	})
}
