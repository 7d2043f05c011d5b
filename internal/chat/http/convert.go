package http

import (
	"github.com/aussiebroadwan/snug/internal/chat/domain"
	"github.com/aussiebroadwan/snug/pkg/chatsdk"
)

func toWireUsers(in []domain.Presence) []chatsdk.UserPresence {
	out := make([]chatsdk.UserPresence, 0, len(in))
	for _, p := range in {
		out = append(out, chatsdk.UserPresence{
			Username: p.Username,
			Status:   p.Status,
			LastSeen: p.LastSeen,
		})
	}
	return out
}

func toWireMessages(in []domain.Message) []chatsdk.Message {
	out := make([]chatsdk.Message, 0, len(in))
	for _, m := range in {
		out = append(out, toWireMessage(m))
	}
	return out
}

func toWireMessage(m domain.Message) chatsdk.Message {
	return chatsdk.Message{
		ID:        m.ID,
		From:      m.From,
		Text:      m.Text,
		Timestamp: m.Timestamp,
	}
}
