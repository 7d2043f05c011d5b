package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/snug/internal/chat/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
)

type MFAService struct {
	Store  store.Store
	Issuer string // issuer name shown in authenticator apps
}

// MFAEnrollment carries the staged secret back to the user for their
// authenticator app. MFA is not active until Activate verifies one code.
type MFAEnrollment struct {
	Secret     string
	OTPAuthURL string
}

// Enroll generates and stages a TOTP secret for the user. Does not enable
// MFA yet.
func (s *MFAService) Enroll(ctx context.Context, userID string) (MFAEnrollment, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return MFAEnrollment{}, fmt.Errorf("loading user: %w", err)
	}
	if user.MFAEnabled != nil {
		return MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return MFAEnrollment{}, fmt.Errorf("generating TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateMFASecret(ctx, userID, key.Secret()); err != nil {
		return MFAEnrollment{}, fmt.Errorf("staging MFA secret: %w", err)
	}

	return MFAEnrollment{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

// Activate verifies one code against the staged secret and switches MFA on.
func (s *MFAService) Activate(ctx context.Context, userID, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	if user.MFASecret == nil || *user.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if user.MFAEnabled != nil {
		return ErrMFAAlreadyEnabled
	}

	if !totp.Validate(code, *user.MFASecret) {
		return ErrInvalidTOTPCode
	}
	return s.Store.Users().EnableMFA(ctx, userID)
}

// Disable switches MFA off and discards the secret.
func (s *MFAService) Disable(ctx context.Context, userID string) error {
	return s.Store.Users().DisableMFA(ctx, userID)
}
