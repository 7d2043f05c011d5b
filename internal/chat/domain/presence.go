package domain

import "time"

// Presence is one row of the online-users roster. Rows are upserted on every
// authenticated snapshot or send, and reaped once LastSeen falls outside the
// configured presence window.
type Presence struct {
	Username string
	Status   string // freeform, e.g. "online"
	LastSeen time.Time
}
