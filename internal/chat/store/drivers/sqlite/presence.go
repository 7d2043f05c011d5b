package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
)

type presenceRepo struct {
	db dbtx
}

func (r *presenceRepo) UpsertPresence(ctx context.Context, p domain.Presence) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO presence (username, status, last_seen) VALUES (?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET status = excluded.status, last_seen = excluded.last_seen`,
		p.Username, p.Status, p.LastSeen.UTC())
	return err
}

func (r *presenceRepo) DeletePresence(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM presence WHERE username = ?`, username)
	return err
}

func (r *presenceRepo) ListActivePresence(ctx context.Context, cutoff time.Time) ([]domain.Presence, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, status, last_seen FROM presence
		 WHERE last_seen >= ? ORDER BY username ASC`, cutoff.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Presence
	for rows.Next() {
		var p domain.Presence
		if err := rows.Scan(&p.Username, &p.Status, &p.LastSeen); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *presenceRepo) DeleteStalePresence(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM presence WHERE last_seen < ?`, cutoff.UTC())
	return err
}
