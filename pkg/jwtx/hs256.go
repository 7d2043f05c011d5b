package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256KeyBytes is the minimum accepted symmetric key length. HMAC-SHA256
// keys shorter than the hash output weaken the construction.
const MinHS256KeyBytes = 32

// hs256 implements both Signer and Verifier over one shared symmetric key.
type hs256 struct {
	key []byte
}

func newHS256(key []byte) (*hs256, error) {
	if len(key) < MinHS256KeyBytes {
		return nil, ErrKeyTooShort
	}
	return &hs256{key: key}, nil
}

func (h *hs256) Alg() string { return "HS256" }

// Sign produces a compact signed JWT for the given claims.
func (h *hs256) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.key)
}

// Verify checks structure and signature only. Claim-level validation (exp,
// iss) is the caller's job via the Claims helpers.
func (h *hs256) Verify(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return h.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		default:
			return Claims{}, ErrMalformed
		}
	}

	return claims, nil
}
