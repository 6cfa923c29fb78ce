// Package matchmaking implements the Elo-bucketed ranked queue and its
// periodic pairing sweep, following the carry-over pointer algorithm
// described for the reference service (the original source has no
// literal implementation of this sweep; it is built directly from the
// bucket/carry-over rules the service documents).
package matchmaking

import (
	"sync"

	"github.com/chessroyale/core/chesstypes"
	"github.com/chessroyale/core/player"
)

// BucketCount is the number of Elo buckets per game type.
const BucketCount = 30

// BucketWidth is the rating span a single bucket covers.
const BucketWidth = 100

// Bucket computes the Elo bucket index for rating, clamping overflow
// into the top bucket.
func Bucket(rating int) int {
	b := rating / BucketWidth
	if b >= BucketCount {
		return BucketCount - 1
	}
	if b < 0 {
		return 0
	}
	return b
}

// Pair is two players the sweep has matched together for gameType.
type Pair struct {
	Player1, Player2 *player.Player
	GameType         chesstypes.GameType
}

// Queue holds every game type's Elo buckets and the players currently
// waiting in them. A player is present in at most one bucket, for at
// most one game type, at any time.
type Queue struct {
	mu      sync.Mutex
	buckets map[chesstypes.GameType][BucketCount][]*player.Player
	// location maps a waiting player straight to their (gameType, bucket)
	// so Cancel doesn't need to scan every bucket.
	location map[*player.Player]location
}

type location struct {
	gameType chesstypes.GameType
	bucket   int
}

// NewQueue returns an empty matchmaking queue.
func NewQueue() *Queue {
	q := &Queue{
		buckets:  make(map[chesstypes.GameType][BucketCount][]*player.Player),
		location: make(map[*player.Player]location),
	}
	for _, gt := range chesstypes.AllGameTypes {
		q.buckets[gt] = [BucketCount][]*player.Player{}
	}
	return q
}

// Join enqueues p for gameType in the bucket matching its rating for
// that game type. Reports false if p is already waiting anywhere.
func (q *Queue) Join(p *player.Player, gameType chesstypes.GameType) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, waiting := q.location[p]; waiting {
		return false
	}

	bucket := Bucket(p.Elo[gameType])
	buckets := q.buckets[gameType]
	buckets[bucket] = append(buckets[bucket], p)
	q.buckets[gameType] = buckets
	q.location[p] = location{gameType: gameType, bucket: bucket}
	return true
}

// Cancel removes p from whichever bucket holds it. Reports false if p
// was not waiting.
func (q *Queue) Cancel(p *player.Player) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	loc, waiting := q.location[p]
	if !waiting {
		return false
	}
	q.removeLocked(p, loc)
	return true
}

// IsWaiting reports whether p is currently in any queue bucket.
func (q *Queue) IsWaiting(p *player.Player) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, waiting := q.location[p]
	return waiting
}

func (q *Queue) removeLocked(p *player.Player, loc location) {
	buckets := q.buckets[loc.gameType]
	bucket := buckets[loc.bucket]
	for i, other := range bucket {
		if other == p {
			buckets[loc.bucket] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	q.buckets[loc.gameType] = buckets
	delete(q.location, p)
}

// Sweep pairs up waiting players across all game types and returns every
// pair formed. For each game type it walks buckets 0..29 in order,
// carrying a single leftover player across adjacent buckets: a bucket
// with an odd number of waiting players leaves one behind, which is
// offered to the next bucket before that bucket's own players are
// paired off. If two consecutive buckets produce no carry-over partner,
// the leftover is reinserted into the bucket it originally came from
// rather than drifting further across the rating range.
func (q *Queue) Sweep() []Pair {
	q.mu.Lock()
	defer q.mu.Unlock()

	var pairs []Pair
	for _, gameType := range chesstypes.AllGameTypes {
		pairs = append(pairs, q.sweepGameTypeLocked(gameType)...)
	}
	return pairs
}

func (q *Queue) sweepGameTypeLocked(gameType chesstypes.GameType) []Pair {
	var pairs []Pair
	buckets := q.buckets[gameType]

	var carry *player.Player
	carryOrigin := -1
	emptyStreak := 0

	for i := 0; i < BucketCount; i++ {
		players := buckets[i]

		if carry != nil {
			if len(players) > 0 {
				partner := players[0]
				players = players[1:]
				pairs = append(pairs, Pair{Player1: carry, Player2: partner, GameType: gameType})
				delete(q.location, carry)
				delete(q.location, partner)
				carry = nil
				carryOrigin = -1
				emptyStreak = 0
			} else {
				emptyStreak++
				if emptyStreak >= 2 {
					origin := buckets[carryOrigin]
					origin = append(origin, carry)
					buckets[carryOrigin] = origin
					q.location[carry] = location{gameType: gameType, bucket: carryOrigin}
					carry = nil
					carryOrigin = -1
					emptyStreak = 0
				}
			}
		}

		for len(players) >= 2 {
			p1, p2 := players[0], players[1]
			players = players[2:]
			pairs = append(pairs, Pair{Player1: p1, Player2: p2, GameType: gameType})
			delete(q.location, p1)
			delete(q.location, p2)
		}

		if len(players) == 1 && carry == nil {
			carry = players[0]
			carryOrigin = i
			players = nil
			emptyStreak = 0
		}

		buckets[i] = players
	}

	if carry != nil {
		buckets[carryOrigin] = append(buckets[carryOrigin], carry)
		q.location[carry] = location{gameType: gameType, bucket: carryOrigin}
	}

	q.buckets[gameType] = buckets
	return pairs
}
