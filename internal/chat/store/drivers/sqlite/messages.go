package sqlite

import (
	"context"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) AppendMessage(ctx context.Context, m domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, sender, body, ts) VALUES (?, ?, ?, ?)`,
		m.ID, m.From, m.Text, m.Timestamp)
	return mapConstraint(err)
}

func (r *messagesRepo) ListRecentMessages(ctx context.Context, limit int) ([]domain.Message, error) {
	// Newest `limit` rows, served oldest-first. The inner query picks the
	// tail of the log; the outer one flips it back into display order.
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sender, body, ts FROM (
			SELECT id, sender, body, ts FROM messages
			ORDER BY ts DESC, id DESC LIMIT ?
		 ) ORDER BY ts ASC, id ASC`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.From, &m.Text, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *messagesRepo) TrimMessages(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM messages WHERE id NOT IN (
			SELECT id FROM messages ORDER BY ts DESC, id DESC LIMIT ?
		 )`, keep)
	return err
}
