package service

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
	"github.com/aussiebroadwan/snug/internal/chat/store"
)

// ProfileService serves the optional peer profiles. A user with no published
// profile yields store.ErrNotFound, which the HTTP layer maps to 404 and the
// client treats as "peer offline", not as a failure.
type ProfileService struct {
	Store store.Store
}

func (s *ProfileService) GetByUsername(ctx context.Context, username string) (domain.PeerProfile, error) {
	return s.Store.Profiles().GetProfileByUsername(ctx, strings.TrimSpace(username))
}

// Publish replaces the caller's profile wholesale.
func (s *ProfileService) Publish(ctx context.Context, username string, p domain.PeerProfile) error {
	p.Username = username
	return s.Store.Profiles().UpsertProfile(ctx, p)
}
