package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/internal/chat/store"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/aussiebroadwan/snug/pkg/httpx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// PeersHandler serves GET /v1/peers/{username}.
type PeersHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP godoc
//
//	@Summary		Fetch a peer's profile
//	@Description	Returns the published profile card for another user. 404 is a valid empty state meaning the peer has published nothing or departed; clients should render it as informational, not as a failure.
//	@Tags			Chat
//	@Security		BearerAuth
//	@Produce		json
//	@Param			username	path		string					true	"Peer username"
//	@Success		200			{object}	chatsdk.PeerDetails		"Published profile"
//	@Failure		401			{object}	chatsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404			{object}	chatsdk.ErrorResponse	"No profile published"
//	@Failure		500			{object}	chatsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/peers/{username} [get].
func (h *PeersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username := r.PathValue("username")
	if username == "" {
		chatsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	profile, err := h.ProfileService.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			chatsdk.ErrPeerNotFound.WriteError(w)
			return
		}
		log.Error("peer profile lookup failed", "username", username, "err", err)
		chatsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, chatsdk.PeerDetails{
		Username:  profile.Username,
		Nickname:  profile.Nickname,
		Tagline:   profile.Tagline,
		AvatarURL: profile.AvatarURL,
		UpdatedAt: profile.UpdatedAt,
	})
}
