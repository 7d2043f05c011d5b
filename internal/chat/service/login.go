package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/domain"
	"github.com/aussiebroadwan/snug/internal/chat/store"
	"github.com/aussiebroadwan/snug/pkg/cryptox"
	"github.com/aussiebroadwan/snug/pkg/idx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

const (
	maxUsernameLen = 32
	maxPasswordLen = 128
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrValidation         = errors.New("validation_failed")
	ErrOTPRequired        = errors.New("otp_required")
	ErrUsernameTaken      = errors.New("username_taken")
)

// LoginService authenticates users and creates accounts. Credential depth
// (password policy, email verification) is owned elsewhere; this layer only
// verifies hashes and enforces the bare non-empty invariants.
type LoginService struct {
	Store  store.Store
	Tokens *TokenService
}

// LoginResult is everything a fresh client needs to become active without a
// follow-up fetch: the token plus an initial snapshot.
type LoginResult struct {
	User      domain.User
	Token     string
	ExpiresIn time.Duration
}

// Login verifies the username/password pair (and TOTP code when the account
// has MFA enabled) and mints a bearer token. Credential failures all collapse
// into ErrInvalidCredentials so the response doesn't leak which part failed;
// the one exception is ErrOTPRequired, which the client needs to prompt for
// a code.
func (s *LoginService) Login(ctx context.Context, username, password, otpCode string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, ErrValidation
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn comparable time so missing users aren't distinguishable
			// from wrong passwords.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("looking up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login password verification failed", "username", user.Username)
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.MFAEnabled != nil && user.MFASecret != nil {
		if otpCode == "" {
			return LoginResult{}, ErrOTPRequired
		}
		if !totp.Validate(otpCode, *user.MFASecret) {
			l.Info("login TOTP verification failed", "username", user.Username)
			return LoginResult{}, ErrInvalidCredentials
		}
	}

	token, expiresIn, err := s.Tokens.Mint(user, time.Now().UTC())
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: user, Token: token, ExpiresIn: expiresIn}, nil
}

// Register creates a new account. Only shallow validation happens here.
func (s *LoginService) Register(ctx context.Context, username, password, email string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || password == "" {
		return domain.User{}, ErrValidation
	}
	if len(username) > maxUsernameLen || len(password) > maxPasswordLen {
		return domain.User{}, ErrValidation
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// dummyHash is a valid argon2id encoding used to equalise timing when the
// username doesn't exist. The password it encodes is random and unknown.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$yZfR0Vioh9exez9cBBlRFaqkYDAgCIBDLxUOFrQNWrI"
