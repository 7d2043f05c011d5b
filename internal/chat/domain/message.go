package domain

// Message is one chat line. ID is a storage-side ULID; the merge identity
// clients dedupe on is the (Timestamp, From, Text) triple, so two rows that
// agree on all three are the same message as far as any reader is concerned.
type Message struct {
	ID        string
	From      string // sender username
	Text      string
	Timestamp int64 // unix seconds
}
