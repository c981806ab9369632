// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/jason-s-yu/war/internal/game"
	"github.com/jason-s-yu/war/internal/middleware"
	"github.com/sirupsen/logrus"
)

// writeTimeout bounds a single event write to a spectator.
const writeTimeout = 3 * time.Second

// GameWSHandler upgrades the request to a WebSocket, starts a fresh game and
// streams every game event to the client as JSON. The connection closes
// normally after the game_end event. Query: ?seed=N for a reproducible deal.
func GameWSHandler(logger logrus.FieldLogger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"war"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "war" {
			logger.Warnf("Client %s connected with invalid subprotocol: %q", r.RemoteAddr, c.Subprotocol())
			c.Close(BadSubprotocolError, "Client must use the 'war' subprotocol.")
			return
		}

		seed, err := parseSeed(r.URL.Query().Get("seed"))
		if err != nil {
			c.Close(InvalidSeedError, "seed must be an integer")
			return
		}

		g := gs.NewWarGame(seed)
		defer gs.GameStore.DeleteGame(g.ID)
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, g.ID)

		// CloseRead cancels ctx once the spectator goes away.
		ctx, cancel := context.WithCancel(c.CloseRead(r.Context()))
		defer cancel()

		var writeErr error
		g.BroadcastFn = func(ev game.GameEvent) {
			if writeErr != nil {
				return
			}
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			defer wcancel()
			if err := wsjson.Write(wctx, c, ev); err != nil {
				writeErr = err
				cancel()
			}
		}

		_, err = g.Play(ctx)
		if writeErr != nil {
			err = writeErr
		}
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, g.ID, err)

		switch {
		case err == nil:
			c.Close(websocket.StatusNormalClosure, "game over")
		case errors.Is(err, context.Canceled), websocket.CloseStatus(err) != -1:
			// spectator left; nothing to send
		default:
			c.Close(GameFailedError, "game aborted")
		}
	}
}
