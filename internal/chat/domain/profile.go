package domain

import "time"

// PeerProfile is the optional secondary profile a user may publish. Most
// users never publish one; its absence is an ordinary state, not an error.
type PeerProfile struct {
	Username  string
	Nickname  string
	Tagline   string
	AvatarURL string
	UpdatedAt time.Time
}
