// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the spectator stream.
const (
	BadSubprotocolError = 3000 // Client connected without the "war" subprotocol.
	InvalidSeedError    = 3001 // The seed query parameter was not an integer.
	GameFailedError     = 3002 // The game aborted on an internal error.
)
