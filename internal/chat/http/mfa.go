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

// MFAHandler handles TOTP enrollment endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll handles POST /v1/mfa/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates and stages a TOTP secret for the authenticated user. MFA is not active until one code is verified via /v1/mfa/activate.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	chatsdk.MFAEnrollResponse	"secret, otpauth_url"
//	@Failure		401	{object}	chatsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		409	{object}	chatsdk.ErrorResponse		"MFA already enabled"
//	@Failure		500	{object}	chatsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		chatsdk.ErrInvalidToken.WriteError(w)
		return
	}

	enrollment, err := h.MFAService.Enroll(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, service.ErrMFAAlreadyEnabled) {
			(&chatsdk.APIError{
				StatusCode:  http.StatusConflict,
				Code:        "mfa_already_enabled",
				Description: "MFA is already enabled for this account",
			}).WriteError(w)
			return
		}
		log.Error("MFA enrollment failed", "user_id", principal.ID, "err", err)
		chatsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, chatsdk.MFAEnrollResponse{
		Secret:     enrollment.Secret,
		OTPAuthURL: enrollment.OTPAuthURL,
	})
}

// HandleActivate handles POST /v1/mfa/activate
//
//	@Summary		Activate TOTP MFA
//	@Description	Verifies one code against the staged secret and switches MFA on for the account. Subsequent logins require a code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	chatsdk.MFAActivateRequest	true	"TOTP code"
//	@Success		204		"MFA enabled"
//	@Failure		400		{object}	chatsdk.ErrorResponse	"Invalid code or not enrolled"
//	@Failure		401		{object}	chatsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500		{object}	chatsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/mfa/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		chatsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req chatsdk.MFAActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		chatsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.MFAService.Activate(ctx, principal.ID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrMFANotEnrolled),
			errors.Is(err, service.ErrInvalidTOTPCode),
			errors.Is(err, service.ErrMFAAlreadyEnabled):
			(&chatsdk.APIError{
				StatusCode:  http.StatusBadRequest,
				Code:        chatsdk.ErrorCodeInvalidRequest,
				Description: err.Error(),
			}).WriteError(w)
		default:
			log.Error("MFA activation failed", "user_id", principal.ID, "err", err)
			chatsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
