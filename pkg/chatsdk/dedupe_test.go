package chatsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupeMessagesLaterOccurrenceWins(t *testing.T) {
	a := Message{From: "alice", Text: "hi", Timestamp: 10}
	dup := Message{ID: "server-id", From: "alice", Text: "hi", Timestamp: 10}
	b := Message{From: "bob", Text: "yo", Timestamp: 20}

	out := DedupeMessages([]Message{a, b, dup})

	require.Len(t, out, 2)
	// The duplicate replaced the original in its first-occurrence position.
	require.Equal(t, "server-id", out[0].ID)
	require.Equal(t, "bob", out[1].From)
}

func TestDedupeMessagesSortsByTimestamp(t *testing.T) {
	out := DedupeMessages([]Message{
		{From: "bob", Text: "third", Timestamp: 30},
		{From: "alice", Text: "first", Timestamp: 10},
		{From: "carol", Text: "second", Timestamp: 20},
	})

	require.Equal(t, []string{"first", "second", "third"}, []string{out[0].Text, out[1].Text, out[2].Text})
}

func TestDedupeMessagesEqualTimestampsKeepInputOrder(t *testing.T) {
	out := DedupeMessages([]Message{
		{From: "alice", Text: "a", Timestamp: 10},
		{From: "bob", Text: "b", Timestamp: 10},
		{From: "carol", Text: "c", Timestamp: 10},
	})

	require.Equal(t, []string{"a", "b", "c"}, []string{out[0].Text, out[1].Text, out[2].Text})
}

func TestDedupeMessagesIsIdempotent(t *testing.T) {
	in := []Message{
		{From: "bob", Text: "b", Timestamp: 20},
		{From: "alice", Text: "a", Timestamp: 10},
		{From: "bob", Text: "b", Timestamp: 20},
	}

	once := DedupeMessages(in)
	twice := DedupeMessages(once)
	require.Equal(t, once, twice)
}

func TestDedupeMessagesDoesNotMutateInput(t *testing.T) {
	in := []Message{
		{From: "bob", Text: "b", Timestamp: 20},
		{From: "alice", Text: "a", Timestamp: 10},
	}
	orig := append([]Message(nil), in...)

	_ = DedupeMessages(in)
	require.Equal(t, orig, in)
}

func TestDedupeMessagesEmptyAndNil(t *testing.T) {
	require.Empty(t, DedupeMessages(nil))
	require.Empty(t, DedupeMessages([]Message{}))
}

func TestDedupeMessagesZeroValueFieldsStillKey(t *testing.T) {
	// Messages with missing fields dedupe on their zero values rather than
	// being treated as all distinct.
	out := DedupeMessages([]Message{
		{Timestamp: 5},
		{Timestamp: 5},
		{From: "alice", Timestamp: 5},
	})
	require.Len(t, out, 2)
}
