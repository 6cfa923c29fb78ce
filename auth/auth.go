// Package auth implements sign-up/sign-in against the player store,
// following the reference service's AuthService, with password hashing
// delegated to a PasswordHasher collaborator since hashing primitives
// are outside the core's scope.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/chessroyale/core/player"
	"github.com/chessroyale/core/protocol"
	"github.com/chessroyale/core/store"
)

// PasswordHasher hashes and verifies passwords. The default
// implementation wraps golang.org/x/crypto/bcrypt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher is the default PasswordHasher.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ErrInvalidField is returned when a request fails field validation
// (nick/email/password shape) before ever reaching the store.
var ErrInvalidField = errors.New("auth: invalid request field")

// Result is the outcome of a sign-up or sign-in attempt: exactly one of
// Player or Status (non-success) is meaningful.
type Result struct {
	Player *player.Player
	Status protocol.AuthStatus
}

// Service validates credentials, creates accounts, and authenticates
// returning clients against a PlayerStore.
type Service struct {
	store  store.PlayerStore
	hasher PasswordHasher
}

// NewService returns an auth Service backed by s, hashing passwords with
// hasher. Pass BcryptHasher{} for the default.
func NewService(s store.PlayerStore, hasher PasswordHasher) *Service {
	return &Service{store: s, hasher: hasher}
}

// SignUp validates nick/email/password, rejects existing accounts, and
// creates a new one with default Elo on success.
func (s *Service) SignUp(ctx context.Context, nick, email, password string) (Result, error) {
	if !protocol.NickPattern.MatchString(nick) || !protocol.EmailPattern.MatchString(email) ||
		!protocol.ValidPasswordLength(password) {
		return Result{}, ErrInvalidField
	}

	exists, err := s.store.ExistsByNick(ctx, nick)
	if err != nil {
		return Result{}, err
	}
	if exists {
		return Result{Status: protocol.AuthNickExist}, nil
	}

	exists, err = s.store.ExistsByEmail(ctx, email)
	if err != nil {
		return Result{}, err
	}
	if exists {
		return Result{Status: protocol.AuthEmailExist}, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Result{}, err
	}

	elo := player.DefaultElo()
	if err := s.store.Insert(ctx, store.Record{Nick: nick, Email: email, PasswordHash: hash, Elo: elo}); err != nil {
		return Result{}, err
	}

	return Result{Player: player.New(nick, elo), Status: protocol.AuthSuccess}, nil
}

// SignIn validates email/password shape, looks the account up by email,
// and verifies the password hash.
func (s *Service) SignIn(ctx context.Context, email, password string) (Result, error) {
	if !protocol.EmailPattern.MatchString(email) || !protocol.ValidPasswordLength(password) {
		return Result{}, ErrInvalidField
	}

	rec, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return Result{Status: protocol.AuthEmailNotExist}, nil
	}
	if err != nil {
		return Result{}, err
	}

	if !s.hasher.Verify(rec.PasswordHash, password) {
		return Result{Status: protocol.AuthWrongPassword}, nil
	}

	return Result{Player: player.New(rec.Nick, rec.Elo), Status: protocol.AuthSuccess}, nil
}
