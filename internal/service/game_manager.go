package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/storage"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameStore persists game snapshots. *storage.Storage implements it.
type GameStore interface {
	SaveGame(state model.GameState) error
	LoadGame(id string) (model.GameState, error)
}

type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	store            GameStore
	matchingChannels map[string]chan model.MatchFoundEvent
	pendingMatches   map[string]model.MatchFoundEvent // players queued without a socket
	mu               sync.RWMutex
}

// NewGameManager creates a manager backed by store. A nil store keeps games
// in memory only.
func NewGameManager(store GameStore) *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		store:            store,
		matchingChannels: make(map[string]chan model.MatchFoundEvent),
		pendingMatches:   make(map[string]model.MatchFoundEvent),
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair seats the two longest-waiting players in a new game and
// notifies them. It reports whether a pair was found.
func (gm *GameManager) matchNextPair() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	player1, player2, ok := gm.queue.NextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	game := model.NewGame(gameID)
	gm.games[gameID] = game

	for _, playerID := range []string{player1, player2} {
		color, err := game.AddPlayer(playerID)
		if err != nil {
			log.Errorf("matchmaking: seat %s in %s: %v", playerID, gameID, err)
			continue
		}
		gm.notifyMatch(playerID, model.MatchFoundEvent{GameID: gameID, Color: color})
	}
	gm.persist(game)
	log.Infof("matchmaking: %s vs %s in game %s", player1, player2, gameID)
	return true
}

// notifyMatch sends event on the player's channel and retires the channel.
// Players without a channel keep the event until they ask for it.
// Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		gm.pendingMatches[playerID] = event
		return
	}
	select {
	case ch <- event:
	default:
		log.Warnf("matchmaking: failed to notify %s", playerID)
	}
	delete(gm.matchingChannels, playerID)
	close(ch)
}

// WaitForMatch queues the player and announces their match on ch. A player
// who is already queued keeps their place, and ch replaces the channel they
// were waiting on, which is closed. A match found while the player had no
// channel is delivered right away.
func (gm *GameManager) WaitForMatch(playerID string, ch chan model.MatchFoundEvent) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if event, ok := gm.pendingMatches[playerID]; ok {
		delete(gm.pendingMatches, playerID)
		gm.matchingChannels[playerID] = ch
		gm.notifyMatch(playerID, event)
		return nil
	}

	if err := gm.queue.AddPlayer(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		return err
	}
	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

// CancelMatch takes the player out of the queue if ch is still the channel
// they are waiting on. A channel that was replaced or already used is a no-op.
func (gm *GameManager) CancelMatch(playerID string, ch chan model.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, ok := gm.matchingChannels[playerID]; ok && current == ch {
		delete(gm.matchingChannels, playerID)
		gm.queue.RemovePlayer(playerID)
	}
}

// JoinMatchmaking queues the player without a channel; the match is picked
// up later with MatchStatus.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(playerID); err != nil {
		return err
	}
	delete(gm.pendingMatches, playerID)
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.queue.RemovePlayer(playerID)
}

// MatchStatus reports the match found for the player, if any, and whether
// they are still queued.
func (gm *GameManager) MatchStatus(playerID string) (model.MatchFoundEvent, bool, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	event, matched := gm.pendingMatches[playerID]
	return event, matched, gm.queue.Contains(playerID)
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	game := model.NewGame(gameID)
	gm.games[gameID] = game
	gm.persist(game)
	return nil
}

// GetGame returns a live game, loading it from the store if it is not in
// memory.
func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return game, nil
	}
	if gm.store == nil {
		return nil, ErrGameNotFound
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if game, exists := gm.games[gameID]; exists {
		return game, nil
	}

	state, err := gm.store.LoadGame(gameID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	game, err = model.RestoreGame(state)
	if err != nil {
		return nil, err
	}
	gm.games[gameID] = game
	log.Infof("restored game %s from storage", gameID)
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (chess.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return chess.White, err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return color, err
	}
	gm.persist(game)
	return color, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.State(), nil
}

func (gm *GameManager) Destinations(gameID string, from chess.Square) ([]chess.Square, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Destinations(from)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.Move) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	if err := game.MakeMove(playerID, move); err != nil {
		return err
	}
	gm.persist(game)
	return nil
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// persist saves a snapshot of game. The save runs under the game's lock so a
// slower save never overwrites a newer one. Storage failures are logged; the
// game keeps running from memory.
func (gm *GameManager) persist(game *model.Game) {
	if gm.store == nil {
		return
	}
	if err := game.Save(gm.store.SaveGame); err != nil {
		log.Errorf("save game %s: %v", game.ID, err)
	}
}
