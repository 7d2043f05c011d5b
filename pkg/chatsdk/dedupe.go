package chatsdk

import "sort"

type messageKey struct {
	Timestamp int64
	From      string
	Text      string
}

// DedupeMessages merges a message list by the (Timestamp, From, Text)
// identity. When the same identity appears more than once the later
// occurrence wins, replacing the earlier one in place, so re-merging a
// server snapshot over optimistic local entries is idempotent. The result is
// stably sorted by Timestamp ascending; equal timestamps keep their input
// order.
//
// The function is pure: the input slice is never modified.
func DedupeMessages(in []Message) []Message {
	out := make([]Message, 0, len(in))
	seen := make(map[messageKey]int, len(in))

	for _, m := range in {
		k := messageKey{Timestamp: m.Timestamp, From: m.From, Text: m.Text}
		if i, ok := seen[k]; ok {
			out[i] = m
			continue
		}
		seen[k] = len(out)
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}
