package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
	"github.com/aussiebroadwan/snug/pkg/jwtx"
)

// TokenService mints signed bearer tokens for authenticated identities.
// The signer is constructed once at startup; a missing or malformed signing
// key fails application init, never an individual request.
type TokenService struct {
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// Mint issues a token with subject = username and the user's email as a
// custom claim, valid from now until now+AccessTTL.
func (s *TokenService) Mint(u domain.User, now time.Time) (token string, expiresIn time.Duration, err error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(u.Username, u.Email, s.Issuer, ttl, now)
	token, err = s.Signer.Sign(claims)
	if err != nil {
		return "", 0, fmt.Errorf("minting access token: %w", err)
	}
	return token, ttl, nil
}
