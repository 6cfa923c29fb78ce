package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessroyale/core/protocol"
	"github.com/chessroyale/core/store"
)

func newTestService() *Service {
	return NewService(store.NewMemoryStore(), BcryptHasher{})
}

func TestSignUpThenSignIn(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	res, err := s.SignUp(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, protocol.AuthSuccess, res.Status)
	require.NotNil(t, res.Player)

	res, err = s.SignIn(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, protocol.AuthSuccess, res.Status)
	assert.Equal(t, "alice", res.Player.Nick)
}

func TestSignUpRejectsDuplicateNick(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	_, err := s.SignUp(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	res, err := s.SignUp(ctx, "alice", "other@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, protocol.AuthNickExist, res.Status)
}

func TestSignInWrongPassword(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	_, err := s.SignUp(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	res, err := s.SignIn(ctx, "alice@example.com", "wrongpass")
	require.NoError(t, err)
	assert.Equal(t, protocol.AuthWrongPassword, res.Status)
}

func TestSignUpRejectsInvalidNick(t *testing.T) {
	s := newTestService()
	_, err := s.SignUp(context.Background(), "ab", "alice@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidField)
}
