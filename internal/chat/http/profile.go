package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
	"github.com/aussiebroadwan/snug/pkg/httpx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// ProfileHandler serves PUT /v1/profile.
type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// ServeHTTP godoc
//
//	@Summary		Publish your profile
//	@Description	Replaces the caller's published profile card wholesale. Peers retrieve it via /v1/peers/{username}; users who never publish simply yield 404 there.
//	@Tags			Chat
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	chatsdk.PeerDetails	true	"Profile card"
//	@Success		204		"Profile stored"
//	@Failure		400		{object}	chatsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	chatsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500		{object}	chatsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/profile [put].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		chatsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req chatsdk.PeerDetails
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		chatsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.ProfileService.Publish(ctx, principal.Username, domain.PeerProfile{
		Nickname:  req.Nickname,
		Tagline:   req.Tagline,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		log.Error("profile publish failed", "username", principal.Username, "err", err)
		chatsdk.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
