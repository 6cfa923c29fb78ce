package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessroyale/core/chesstypes"
)

func TestMemoryStoreInsertAndLookup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := Record{
		Nick:         "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Elo:          map[chesstypes.GameType]int{chesstypes.Blitz: 1000},
	}
	require.NoError(t, s.Insert(ctx, rec))

	exists, err := s.ExistsByNick(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := s.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, rec, found)
}

func TestMemoryStoreFindByEmailNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUpdateElo(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec := Record{
		Nick:  "alice",
		Email: "alice@example.com",
		Elo:   map[chesstypes.GameType]int{chesstypes.Rapid: 1000},
	}
	require.NoError(t, s.Insert(ctx, rec))

	require.NoError(t, s.UpdateElo(ctx, "alice", chesstypes.Rapid, 1015))

	found, err := s.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1015, found.Elo[chesstypes.Rapid])
}

func TestMemoryStoreUpdateEloUnknownNick(t *testing.T) {
	s := NewMemoryStore()
	err := s.UpdateElo(context.Background(), "ghost", chesstypes.Blitz, 1200)
	assert.ErrorIs(t, err, ErrNotFound)
}
