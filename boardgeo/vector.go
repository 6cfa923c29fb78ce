// Package boardgeo implements the 8x8 coordinate math shared by the board
// and the chess engine: positions, directions, and the line/diagonal
// predicates move generation is built on.
package boardgeo

import "fmt"

// Vector2d is a signed board coordinate. White's bottom-left corner is
// (0, 0); valid board squares satisfy 0 <= X,Y < 8.
type Vector2d struct {
	X, Y int
}

// Direction unit vectors, named the way the engine's move tables use them.
var (
	Up        = Vector2d{0, 1}
	UpRight   = Vector2d{1, 1}
	Right     = Vector2d{1, 0}
	DownRight = Vector2d{1, -1}
	Down      = Vector2d{0, -1}
	DownLeft  = Vector2d{-1, -1}
	Left      = Vector2d{-1, 0}
	UpLeft    = Vector2d{-1, 1}
)

// Add returns v + other.
func (v Vector2d) Add(other Vector2d) Vector2d {
	return Vector2d{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2d) Sub(other Vector2d) Vector2d {
	return Vector2d{v.X - other.X, v.Y - other.Y}
}

// Mul returns v scaled by n.
func (v Vector2d) Mul(n int) Vector2d {
	return Vector2d{v.X * n, v.Y * n}
}

// FloorDiv returns v with both components floor-divided by n. n must be
// nonzero and assumes components divide evenly, which holds for every
// caller here since it is only ever used on a difference that is a whole
// multiple of n (see UnitVectorTo).
func (v Vector2d) FloorDiv(n int) Vector2d {
	return Vector2d{floorDiv(v.X, n), floorDiv(v.Y, n)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Neg returns -v.
func (v Vector2d) Neg() Vector2d {
	return Vector2d{-v.X, -v.Y}
}

// Equal reports whether v and other name the same square.
func (v Vector2d) Equal(other Vector2d) bool {
	return v.X == other.X && v.Y == other.Y
}

// String renders v as "(x, y)", mirroring the engine's debug output.
func (v Vector2d) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}

// OnBoard reports whether v names a valid square: 0 <= X,Y < 8.
func OnBoard(v Vector2d) bool {
	return v.X >= 0 && v.X < 8 && v.Y >= 0 && v.Y < 8
}

// SameFile reports whether a and b share a file (column).
func SameFile(a, b Vector2d) bool {
	return a.X == b.X
}

// SameRank reports whether a and b share a rank (row).
func SameRank(a, b Vector2d) bool {
	return a.Y == b.Y
}

// SameDiagonal reports whether a and b lie on a shared diagonal.
func SameDiagonal(a, b Vector2d) bool {
	return a.X-b.X == a.Y-b.Y || a.X-b.X == b.Y-a.Y
}

// SameRow reports whether a and b share a file or a rank.
func SameRow(a, b Vector2d) bool {
	return SameFile(a, b) || SameRank(a, b)
}

// SameLine2 reports whether a and b lie on a shared file, rank, or diagonal.
func SameLine2(a, b Vector2d) bool {
	return SameRow(a, b) || SameDiagonal(a, b)
}

// SameLine3 reports whether a,b and a,c share the same kind of line (both
// on the same file as a, both on the same rank as a, or both on the same
// diagonal as a - checked separately for each of the two diagonal kinds).
func SameLine3(a, b, c Vector2d) bool {
	return SameFile(a, b) && SameFile(a, c) ||
		SameRank(a, b) && SameRank(a, c) ||
		onSameRightUpDiagonal(a, b) && onSameRightUpDiagonal(a, c) ||
		onSameLeftDownDiagonal(a, b) && onSameLeftDownDiagonal(a, c)
}

func onSameRightUpDiagonal(a, b Vector2d) bool {
	return a.X-b.X == a.Y-b.Y
}

func onSameLeftDownDiagonal(a, b Vector2d) bool {
	return a.X-b.X == b.Y-a.Y
}

// Distance returns the step count between a and b along a shared line.
// Undefined if a and b are not colinear.
func Distance(a, b Vector2d) int {
	if SameFile(a, b) {
		return abs(a.Y - b.Y)
	}
	return abs(a.X - b.X)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// IsBetween reports whether pos lies strictly between u and v. Assumes
// pos, u, v are colinear.
func IsBetween(pos, u, v Vector2d) bool {
	d := Distance(u, v)
	return Distance(pos, u) < d && Distance(pos, v) < d
}

// UnitVectorTo returns the unit step from a toward b. Assumes a and b are
// colinear and distinct.
func UnitVectorTo(a, b Vector2d) Vector2d {
	return b.Sub(a).FloorDiv(Distance(a, b))
}
