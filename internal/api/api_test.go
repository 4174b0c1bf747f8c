package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litfish/litgame-go/internal/api"
	"github.com/litfish/litgame-go/internal/api/response"
	"github.com/litfish/litgame-go/internal/factory"
	"github.com/litfish/litgame-go/internal/services/auth"
	"github.com/litfish/litgame-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		RoomController: app.RoomController,
		GameController: app.GameController,
		HubManager:     app.HubManager,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// guest creates a guest player and returns its id and session token
func (ts *testServer) guest(t *testing.T, name string) (string, string) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": name}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Player.ID, resp.SessionToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players/guest", map[string]string{"display_name": "Asha"}, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "Asha", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "asha",
		"password":     "secret123",
		"display_name": "Asha",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.False(t, registerResp.Player.IsGuest)

	loginBody := map[string]string{"username": "asha", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/players/login", map[string]string{"username": "asha", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRoomRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]any{"name": "r1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/r1", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateAndGetRoom(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.guest(t, "Asha")

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]any{"name": "r1"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "r1", created.Name)
	assert.Equal(t, "waiting", created.Status)
	assert.Equal(t, 8, created.Capacity)
	require.Len(t, created.Players, 1)
	assert.True(t, created.Players[0].IsHost)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/r1", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Duplicate name
	rr = ts.request(http.MethodPost, "/api/v1/rooms", map[string]any{"name": "r1"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Unknown room
	rr = ts.request(http.MethodGet, "/api/v1/rooms/nope", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Bad capacity
	rr = ts.request(http.MethodPost, "/api/v1/rooms", map[string]any{"name": "r2", "capacity": 4}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// fullRoom creates room "r1" with 8 seated guests on balanced teams.
// Returned ids and tokens are in join order; seat 0 is the host.
func fullRoom(t *testing.T, ts *testServer) (ids []string, tokens []string) {
	t.Helper()

	for i := 0; i < 8; i++ {
		id, token := ts.guest(t, fmt.Sprintf("Player %d", i))
		ids = append(ids, id)
		tokens = append(tokens, token)
	}

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]any{"name": "r1"}, tokens[0])
	require.Equal(t, http.StatusCreated, rr.Code)
	for i := 1; i < 8; i++ {
		rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/join", nil, tokens[i])
		require.Equal(t, http.StatusOK, rr.Code)
	}

	for i := 0; i < 8; i++ {
		team := "red"
		if i%2 == 1 {
			team = "blue"
		}
		rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/team", map[string]string{"team": team}, tokens[i])
		require.Equal(t, http.StatusOK, rr.Code)
	}

	return ids, tokens
}

func TestJoinLeaveAndTeams(t *testing.T) {
	ts := newTestServer(t)
	_, hostToken := ts.guest(t, "Asha")
	_, otherToken := ts.guest(t, "Bram")

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]any{"name": "r1"}, hostToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/join", nil, otherToken)
	require.Equal(t, http.StatusOK, rr.Code)

	// Joining twice conflicts.
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/join", nil, otherToken)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/team", map[string]string{"team": "blue"}, otherToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "blue", updated.Players[1].Team)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/team", map[string]string{"team": "purple"}, otherToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/leave", nil, otherToken)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Host leaves an otherwise-empty room; the room is deleted.
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/leave", nil, hostToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = ts.request(http.MethodGet, "/api/v1/rooms/r1", nil, hostToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartGameOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ids, tokens := fullRoom(t, ts)

	// Only the host can start.
	rr := ts.request(http.MethodPost, "/api/v1/rooms/r1/start", nil, tokens[3])
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/start", nil, tokens[0])
	require.Equal(t, http.StatusOK, rr.Code)

	var started response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &started))
	assert.Equal(t, "playing", started.Status)
	require.NotNil(t, started.CurrentTurn)
	assert.Equal(t, ids[0], *started.CurrentTurn)
	for _, p := range started.Players {
		assert.Len(t, p.Hand, 6)
	}

	// Starting twice conflicts; joining mid-game conflicts.
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/start", nil, tokens[0])
	assert.Equal(t, http.StatusConflict, rr.Code)
	_, lateToken := ts.guest(t, "Late")
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/join", nil, lateToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestStartGameRejectsUnbalancedTeams(t *testing.T) {
	ts := newTestServer(t)
	_, tokens := fullRoom(t, ts)

	// Move one blue player to red: 5 red vs 3 blue.
	rr := ts.request(http.MethodPost, "/api/v1/rooms/r1/team", map[string]string{"team": "red"}, tokens[1])
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/start", nil, tokens[0])
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "TEAMS_UNBALANCED")
}

func TestPlayActionsOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	ids, tokens := fullRoom(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/r1/start", nil, tokens[0])
	require.Equal(t, http.StatusOK, rr.Code)

	// Requests out of turn are forbidden.
	body := map[string]string{
		"target_player_id": ids[0],
		"suit":             "hearts",
		"rank":             "ace",
		"set_type":         "lower",
	}
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/request-card", body, tokens[5])
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_YOUR_TURN")

	// A declaration by the turn holder always lands one captured set,
	// for their own team or the opposition.
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/declare-set", map[string]string{"suit": "hearts", "set_type": "lower"}, tokens[0])
	require.Equal(t, http.StatusOK, rr.Code)

	var afterDeclare response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &afterDeclare))
	assert.Len(t, afterDeclare.CapturedSets, 1)
	assert.Equal(t, "playing", afterDeclare.Status)
	require.NotNil(t, afterDeclare.CurrentTurn)
	assert.Equal(t, ids[1], *afterDeclare.CurrentTurn)

	// Claiming without a grant is forbidden; after a host grant it works.
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/claim-turn", nil, tokens[4])
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/grant-claim", map[string]string{"player_id": ids[4]}, tokens[0])
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/claim-turn", nil, tokens[4])
	require.Equal(t, http.StatusOK, rr.Code)

	var afterClaim response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &afterClaim))
	require.NotNil(t, afterClaim.CurrentTurn)
	assert.Equal(t, ids[4], *afterClaim.CurrentTurn)

	// Grants from non-hosts are forbidden.
	rr = ts.request(http.MethodPost, "/api/v1/rooms/r1/grant-claim", map[string]string{"player_id": ids[2]}, tokens[3])
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
