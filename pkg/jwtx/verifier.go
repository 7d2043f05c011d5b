package jwtx

import "errors"

// Verifier validates a JWT's structure and signature and gives you back the
// claims if it's legit. Expiry and issuer checks are deliberately separate
// (ValidateExpiry / ValidateIssuer on Claims) so callers can decide how to
// treat a well-signed but expired token.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrKeyTooShort = errors.New("jwtx: signing key too short")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// NewVerifierHS256 creates a Verifier sharing the same symmetric key as the
// signer.
func NewVerifierHS256(key []byte) (Verifier, error) {
	return newHS256(key)
}
