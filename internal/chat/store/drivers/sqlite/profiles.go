package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) GetProfileByUsername(ctx context.Context, username string) (domain.PeerProfile, error) {
	var p domain.PeerProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT username, nickname, tagline, avatar_url, updated_at
		 FROM profiles WHERE username = ?`, username).
		Scan(&p.Username, &p.Nickname, &p.Tagline, &p.AvatarURL, &p.UpdatedAt)
	if err != nil {
		return domain.PeerProfile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) UpsertProfile(ctx context.Context, p domain.PeerProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (username, nickname, tagline, avatar_url, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET
			nickname = excluded.nickname,
			tagline = excluded.tagline,
			avatar_url = excluded.avatar_url,
			updated_at = excluded.updated_at`,
		p.Username, p.Nickname, p.Tagline, p.AvatarURL, time.Now().UTC())
	return err
}
