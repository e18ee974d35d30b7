package model

import (
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

type QueuedPlayer struct {
	PlayerID string
	JoinedAt time.Time
}

// MatchFoundEvent tells a queued player which game they were put in.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  chess.Color `json:"color"`
}

// Queue is the matchmaking queue, first come first served.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(playerID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.PlayerID == playerID {
			return ErrAlreadyQueued
		}
	}

	q.players = append(q.players, QueuedPlayer{
		PlayerID: playerID,
		JoinedAt: time.Now(),
	})
	return nil
}

// RemovePlayer drops playerID from the queue if present.
func (q *Queue) RemovePlayer(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.PlayerID == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return
		}
	}
}

// NextPair pops the two players who have waited longest.
func (q *Queue) NextPair() (string, string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return "", "", false
	}
	player1 := q.players[0].PlayerID
	player2 := q.players[1].PlayerID
	q.players = q.players[2:]

	return player1, player2, true
}

func (q *Queue) Contains(playerID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
