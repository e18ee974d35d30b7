package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// syncConn serializes writes; broadcasts and error replies come from
// different goroutines.
type syncConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *syncConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *syncConn) Close() error {
	return s.conn.Close()
}

func playerIDOf(c *websocket.Conn) string {
	id, _ := c.Locals(middleware.PlayerIDKey).(string)
	return id
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := playerIDOf(c)
	conn := &syncConn{conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("game %s: failed to register connection for %s: %v", gameID, playerID, err)
		wsc.sendError(conn, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read error from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, fmt.Errorf("parse message: %w", err))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("game %s: %s: %v", gameID, playerID, err)
			wsc.sendError(conn, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.Move
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and waits until they are matched or
// the socket closes. A newer matchmaking socket for the same player takes
// over the wait and this one is closed without leaving the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := playerIDOf(c)
	conn := &syncConn{conn: c}

	ch := make(chan model.MatchFoundEvent, 1)
	if err := wsc.gameService.WaitForMatch(playerID, ch); err != nil {
		wsc.sendError(conn, err)
		return
	}
	defer wsc.gameService.CancelMatch(playerID, ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			log.Debugf("matchmaking: %s waiting on a newer socket", playerID)
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			log.Errorf("matchmaking: encode event: %v", err)
			return
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("matchmaking: notify %s: %v", playerID, err)
		}
	case <-closed:
		log.Debugf("matchmaking: %s left the queue", playerID)
	}
}

func (wsc *WebSocketController) sendError(conn model.Conn, err error) {
	msg, encErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if encErr != nil {
		return
	}
	if writeErr := conn.WriteJSON(msg); writeErr != nil {
		log.Debugf("send error reply: %v", writeErr)
	}
}
