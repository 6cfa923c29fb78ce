package boardgeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameLine3(t *testing.T) {
	king := Vector2d{4, 0}
	tests := []struct {
		name string
		b, c Vector2d
		want bool
	}{
		{"same file", Vector2d{4, 3}, Vector2d{4, 7}, true},
		{"same rank", Vector2d{1, 0}, Vector2d{7, 0}, true},
		{"same up-right diagonal", Vector2d{5, 1}, Vector2d{6, 2}, true},
		{"unrelated", Vector2d{1, 0}, Vector2d{4, 7}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameLine3(king, tt.b, tt.c))
		})
	}
}

func TestIsBetween(t *testing.T) {
	assert.True(t, IsBetween(Vector2d{4, 3}, Vector2d{4, 1}, Vector2d{4, 6}))
	assert.False(t, IsBetween(Vector2d{4, 0}, Vector2d{4, 1}, Vector2d{4, 6}))
}

func TestUnitVectorTo(t *testing.T) {
	assert.Equal(t, Up, UnitVectorTo(Vector2d{0, 0}, Vector2d{0, 5}))
	assert.Equal(t, UpRight, UnitVectorTo(Vector2d{0, 0}, Vector2d{3, 3}))
}

func TestOnBoard(t *testing.T) {
	assert.True(t, OnBoard(Vector2d{0, 0}))
	assert.True(t, OnBoard(Vector2d{7, 7}))
	assert.False(t, OnBoard(Vector2d{8, 0}))
	assert.False(t, OnBoard(Vector2d{-1, 3}))
}
