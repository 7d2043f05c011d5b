package jwtx

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// NewSignerHS256 creates an HMAC-SHA256 signer from raw key bytes. The key
// must be at least MinHS256KeyBytes long; anything shorter is a fatal
// misconfiguration, not something to limp along with.
func NewSignerHS256(key []byte) (Signer, error) {
	return newHS256(key)
}
