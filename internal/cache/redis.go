// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup;
// while it is nil games skip publishing.
var Rdb *redis.Client

// DefaultQueueName is the Redis list that receives game events.
const DefaultQueueName = "war_events"

// QueueName is the list PublishGameEvent pushes to.
var QueueName = DefaultQueueName

// GameEventRecord is one game event as stored in the queue.
type GameEventRecord struct {
	GameID     uuid.UUID       `json:"game_id"`
	EventIndex int             `json:"event_index"`
	EventType  string          `json:"event_type"`
	Event      json.RawMessage `json:"event"`
	Timestamp  int64           `json:"timestamp"`
}

// ConnectRedis initializes the global Redis client and pings it.
func ConnectRedis(addr string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	Rdb = client
	return nil
}

// Close releases the global client.
func Close() error {
	if Rdb == nil {
		return nil
	}
	err := Rdb.Close()
	Rdb = nil
	return err
}

// PublishGameEvent serializes the record to JSON and pushes it to the queue.
func PublishGameEvent(ctx context.Context, record GameEventRecord) error {
	if Rdb == nil {
		return fmt.Errorf("redis client not connected")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal GameEventRecord: %w", err)
	}
	if err := Rdb.RPush(ctx, QueueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", QueueName, err)
	}
	return nil
}

// ConsumeGameEvents pops records from the queue until ctx is done, calling
// handle for each one. Malformed entries are reported through onErr and skipped.
func ConsumeGameEvents(ctx context.Context, handle func(GameEventRecord), onErr func(error)) error {
	if Rdb == nil {
		return fmt.Errorf("redis client not connected")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		// A short BLPop timeout lets cancellation be noticed between pops.
		res, err := Rdb.BLPop(ctx, 3*time.Second, QueueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("BLPop %s: %w", QueueName, err)
		}
		if len(res) < 2 {
			continue
		}

		// res[0] is the queue name and res[1] the payload.
		var record GameEventRecord
		if err := json.Unmarshal([]byte(res[1]), &record); err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("invalid event record: %w", err))
			}
			continue
		}
		handle(record)
	}
}
