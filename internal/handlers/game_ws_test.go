package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/jason-s-yu/war/internal/game"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*GameServer, *httptest.Server) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gs := NewGameServer(logger)
	gs.MaxRounds = 2000
	gs.Workers = 2

	mux := http.NewServeMux()
	mux.HandleFunc("/", PingHandler)
	mux.Handle("/game/ws/", GameWSHandler(logger, gs))
	mux.Handle("/game/batch", BatchHandler(gs))
	mux.Handle("/game/list", ListGamesHandler(gs))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return gs, srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestGameWSStreamsWholeGame(t *testing.T) {
	gs, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, wsURL(srv, "/game/ws/?seed=42"), &websocket.DialOptions{
		Subprotocols: []string{"war"},
	})
	require.NoError(t, err)
	defer c.CloseNow()
	c.SetReadLimit(1 << 20)

	var events []game.GameEvent
	for {
		var ev game.GameEvent
		err := wsjson.Read(ctx, c, &ev)
		if err != nil {
			assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
			break
		}
		events = append(events, ev)
	}

	require.NotEmpty(t, events)
	assert.Equal(t, game.EventGameStart, events[0].Type)
	end := events[len(events)-1]
	assert.Equal(t, game.EventGameEnd, end.Type)
	require.NotNil(t, end.Result)
	assert.Equal(t, 52, end.Result.DeckOneCards+end.Result.DeckTwoCards+end.Result.Forfeited)

	assert.Eventually(t, func() bool { return len(gs.GameStore.IDs()) == 0 }, time.Second, 10*time.Millisecond,
		"finished games leave the store")
}

func TestGameWSSameSeedSameGame(t *testing.T) {
	_, srv := newTestServer(t)

	play := func() *game.Result {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c, _, err := websocket.Dial(ctx, wsURL(srv, "/game/ws/?seed=7"), &websocket.DialOptions{
			Subprotocols: []string{"war"},
		})
		require.NoError(t, err)
		defer c.CloseNow()
		for {
			var ev game.GameEvent
			if err := wsjson.Read(ctx, c, &ev); err != nil {
				return nil
			}
			if ev.Type == game.EventGameEnd {
				return ev.Result
			}
		}
	}

	first, second := play(), play()
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Rounds, second.Rounds)
	assert.Equal(t, first.Winner, second.Winner)
	assert.NotEqual(t, first.GameID, second.GameID)
}

func TestGameWSRejectsMissingSubprotocol(t *testing.T) {
	_, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, wsURL(srv, "/game/ws/"), nil)
	require.NoError(t, err)
	defer c.CloseNow()

	_, _, err = c.Read(ctx)
	assert.Equal(t, websocket.StatusCode(BadSubprotocolError), websocket.CloseStatus(err))
}

func TestGameWSRejectsBadSeed(t *testing.T) {
	_, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, wsURL(srv, "/game/ws/?seed=abc"), &websocket.DialOptions{
		Subprotocols: []string{"war"},
	})
	require.NoError(t, err)
	defer c.CloseNow()

	_, _, err = c.Read(ctx)
	assert.Equal(t, websocket.StatusCode(InvalidSeedError), websocket.CloseStatus(err))
}

func TestBatchHandler(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/game/batch?games=10&seed=3")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var stats game.BatchStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 10, stats.Games)
	assert.Equal(t, 10, stats.DeckOneWins+stats.DeckTwoWins+stats.Draws)
}

func TestBatchHandlerValidation(t *testing.T) {
	gs, _ := newTestServer(t)
	h := BatchHandler(gs)

	for _, target := range []string{
		"/game/batch?games=0",
		"/game/batch?games=abc",
		"/game/batch?games=10001",
		"/game/batch?seed=x",
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/game/batch", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestListGamesHandler(t *testing.T) {
	gs, _ := newTestServer(t)
	g := gs.NewWarGame(1)

	w := httptest.NewRecorder()
	ListGamesHandler(gs).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/game/list", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Games []string `json:"games"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{g.ID.String()}, body.Games)
}

func TestPingHandler(t *testing.T) {
	w := httptest.NewRecorder()
	PingHandler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "pong", w.Body.String())
}
