// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jason-s-yu/war/internal/game"
)

// maxBatchGames bounds a single /game/batch request.
const maxBatchGames = 10000

// PingHandler answers liveness checks.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

// ListGamesHandler returns the IDs of games currently being streamed.
func ListGamesHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, map[string]interface{}{"games": gs.GameStore.IDs()})
	}
}

// BatchHandler plays ?games=N simulations (optionally ?seed=S) and returns the aggregate.
func BatchHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := r.URL.Query()

		games := 1
		if s := q.Get("games"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > maxBatchGames {
				http.Error(w, "games must be between 1 and "+strconv.Itoa(maxBatchGames), http.StatusBadRequest)
				return
			}
			games = n
		}
		seed, err := parseSeed(q.Get("seed"))
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}

		stats, err := game.RunBatch(r.Context(), game.BatchOptions{
			Games:     games,
			Seed:      seed,
			Workers:   gs.Workers,
			MaxRounds: gs.MaxRounds,
			Logger:    gs.Logger,
		})
		if err != nil {
			gs.Logger.WithError(err).Warn("Batch aborted")
			http.Error(w, "batch aborted", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, stats)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
