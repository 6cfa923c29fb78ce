package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessroyale/core/boardgeo"
	"github.com/chessroyale/core/chesstypes"
)

func TestNickPattern(t *testing.T) {
	assert.True(t, NickPattern.MatchString("bob"))
	assert.True(t, NickPattern.MatchString("a_valid_nick_16"))
	assert.False(t, NickPattern.MatchString("ab"))
	assert.False(t, NickPattern.MatchString("has space"))
}

func TestAccessKeyPattern(t *testing.T) {
	assert.True(t, AccessKeyPattern.MatchString("ABCDE"))
	assert.False(t, AccessKeyPattern.MatchString("abcde"))
	assert.False(t, AccessKeyPattern.MatchString("ABCD"))
}

func TestDecodeEncodeMoveRoundTrip(t *testing.T) {
	m := chesstypes.NewCapture(boardgeo.Vector2d{X: 4, Y: 1}, boardgeo.Vector2d{X: 4, Y: 6})
	payload := EncodeMove(m)
	decoded, err := DecodeMove(payload)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestDecodeMoveRejectsOffBoard(t *testing.T) {
	_, err := DecodeMove(MovePayload{Type: chesstypes.Normal, PositionFrom: Position{8, 0}, PositionTo: Position{0, 0}})
	assert.ErrorIs(t, err, ErrMalformedMove)
}

func TestDecodeCastlingRequiresRookFields(t *testing.T) {
	_, err := DecodeMove(MovePayload{Type: chesstypes.Castling, PositionFrom: Position{4, 0}, PositionTo: Position{6, 0}})
	assert.ErrorIs(t, err, ErrMalformedMove)
}

