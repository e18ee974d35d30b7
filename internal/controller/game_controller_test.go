package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	gs := service.NewGameService(service.NewGameManager(nil))
	return NewApp(AppConfig{AllowOrigins: "*"}, gs)
}

func do(t *testing.T, app *fiber.App, method, path, playerID, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	data, _ := io.ReadAll(resp.Body)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, data, err)
		}
	}
	return resp.StatusCode, out
}

func createGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("create: status %d", status)
	}
	id, _ := body["game_id"].(string)
	if id == "" {
		t.Fatalf("create: no game id in %v", body)
	}
	return id
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "", "")
	if status != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", status)
	}
	if body["error"] == nil {
		t.Errorf("expected an error message")
	}

	// query parameter works as well
	status, _ = do(t, app, http.MethodPost, "/api/game/create?playerId=alice", "", "")
	if status != fiber.StatusOK {
		t.Errorf("expected 200 with playerId query, got %d", status)
	}
}

func TestJoinGame(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)

	tests := []struct {
		player     string
		wantStatus int
		wantColor  string
	}{
		{"alice", fiber.StatusOK, "white"},
		{"bob", fiber.StatusOK, "black"},
		{"carol", fiber.StatusConflict, ""},
	}
	for _, tt := range tests {
		status, body := do(t, app, http.MethodPost, "/api/game/join/"+id, tt.player, "")
		if status != tt.wantStatus {
			t.Errorf("%s: expected %d, got %d", tt.player, tt.wantStatus, status)
		}
		if tt.wantColor != "" && body["color"] != tt.wantColor {
			t.Errorf("%s: expected color %s, got %v", tt.player, tt.wantColor, body["color"])
		}
	}

	status, _ := do(t, app, http.MethodPost, "/api/game/join/missing", "alice", "")
	if status != fiber.StatusNotFound {
		t.Errorf("expected 404 for missing game, got %d", status)
	}
}

func TestPlayMovesOverREST(t *testing.T) {
	app := newTestApp()
	id := createGame(t, app)
	do(t, app, http.MethodPost, "/api/game/join/"+id, "alice", "")
	do(t, app, http.MethodPost, "/api/game/join/"+id, "bob", "")

	status, body := do(t, app, http.MethodGet, "/api/game/"+id+"/moves/e2", "bob", "")
	if status != fiber.StatusOK {
		t.Fatalf("legal moves: status %d", status)
	}
	moves, _ := body["legalMoves"].([]interface{})
	if len(moves) != 2 || moves[0] != "e3" || moves[1] != "e4" {
		t.Errorf("unexpected legal moves %v", body["legalMoves"])
	}

	tests := []struct {
		name       string
		player     string
		body       string
		wantStatus int
	}{
		{"wrong turn", "bob", `{"from":"e7","to":"e5"}`, fiber.StatusUnprocessableEntity},
		{"stranger", "mallory", `{"from":"e2","to":"e4"}`, fiber.StatusForbidden},
		{"bad square", "alice", `{"from":"e2","to":"z9"}`, fiber.StatusBadRequest},
		{"empty square", "alice", `{"from":"e4","to":"e5"}`, fiber.StatusBadRequest},
		{"illegal", "alice", `{"from":"e2","to":"e5"}`, fiber.StatusUnprocessableEntity},
		{"legal", "alice", `{"from":"e2","to":"e4"}`, fiber.StatusOK},
		{"reply", "bob", `{"from":"e7","to":"e5"}`, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := do(t, app, http.MethodPost, "/api/game/"+id+"/move", tt.player, tt.body)
			if status != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, status)
			}
		})
	}

	status, body = do(t, app, http.MethodGet, "/api/game/"+id, "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("state: status %d", status)
	}
	if body["toMove"] != "white" {
		t.Errorf("expected white to move, got %v", body["toMove"])
	}
	ranks, _ := body["board"].([]interface{})
	if len(ranks) != 8 || ranks[3] != "....p..." || ranks[4] != "....P..." {
		t.Errorf("unexpected board %v", body["board"])
	}
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	app := newTestApp()
	status, _ := do(t, app, http.MethodGet, "/ws/game/anything", "alice", "")
	if status != fiber.StatusUpgradeRequired {
		t.Errorf("expected 426, got %d", status)
	}
}

func TestMatchmakingStatusOverREST(t *testing.T) {
	gm := service.NewGameManager(nil)
	app := NewApp(AppConfig{AllowOrigins: "*"}, service.NewGameService(gm))

	status := func(player string) map[string]interface{} {
		t.Helper()
		code, body := do(t, app, http.MethodGet, "/api/game/matchmaking/status", player, "")
		if code != fiber.StatusOK {
			t.Fatalf("%s status: %d", player, code)
		}
		return body
	}

	if got := status("alice")["status"]; got != "idle" {
		t.Errorf("expected idle, got %v", got)
	}
	for _, player := range []string{"alice", "bob"} {
		if code, _ := do(t, app, http.MethodPost, "/api/game/matchmaking/join", player, ""); code != fiber.StatusOK {
			t.Fatalf("%s join: %d", player, code)
		}
	}
	if code, _ := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", ""); code != fiber.StatusConflict {
		t.Errorf("expected 409 for a second join, got %d", code)
	}
	if got := status("alice")["status"]; got != "queued" {
		t.Errorf("expected queued, got %v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go gm.RunMatchmaking(ctx, 10*time.Millisecond)

	var alice map[string]interface{}
	for alice == nil || alice["status"] != "matched" {
		select {
		case <-ctx.Done():
			t.Fatalf("alice never matched, last status %v", alice)
		case <-time.After(10 * time.Millisecond):
		}
		alice = status("alice")
	}
	bob := status("bob")
	if alice["gameId"] == "" || alice["gameId"] != bob["gameId"] {
		t.Errorf("players put in different games: %v, %v", alice["gameId"], bob["gameId"])
	}
	if alice["color"] != "white" || bob["color"] != "black" {
		t.Errorf("unexpected colors %v, %v", alice["color"], bob["color"])
	}

	code, _ := do(t, app, http.MethodGet, "/api/game/"+alice["gameId"].(string), "alice", "")
	if code != fiber.StatusOK {
		t.Errorf("matched game not found: %d", code)
	}
}
