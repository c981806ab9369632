// internal/game/utils.go
package game

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// convertEventToBytes marshals a GameEvent into JSON bytes.
// Logs a warning and returns empty JSON "{}" on marshalling error.
func convertEventToBytes(ev GameEvent) []byte {
	data, err := json.Marshal(ev)
	if err != nil {
		logrus.WithError(err).Warnf("Failed to marshal GameEvent type %s", ev.Type)
		return []byte("{}")
	}
	return data
}
