// internal/config/config.go
package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds settings read from the environment. A .env file is loaded by
// the godotenv autoload import in each command before Load runs.
type Config struct {
	// Seed for the shuffle; 0 seeds from the clock.
	Seed       int64
	RoundDelay time.Duration
	// MaxRounds caps a single game; 0 means play until a deck empties.
	MaxRounds int
	LogLevel  logrus.Level
	Quiet     bool

	Games   int
	Workers int

	// RedisAddr enables publishing game events when non-empty.
	RedisAddr  string
	RedisDB    int
	EventQueue string

	Port string
}

// Load reads the WAR_*, REDIS_* and PORT variables, falling back to defaults.
func Load() Config {
	return Config{
		Seed:       getEnvInt64("WAR_SEED", 0),
		RoundDelay: time.Duration(getEnvInt("WAR_ROUND_DELAY_MS", 0)) * time.Millisecond,
		MaxRounds:  getEnvInt("WAR_MAX_ROUNDS", 0),
		LogLevel:   getEnvLevel("WAR_LOG_LEVEL", logrus.InfoLevel),
		Quiet:      getEnvBool("WAR_QUIET", false),
		Games:      getEnvInt("WAR_GAMES", 1),
		Workers:    getEnvInt("WAR_WORKERS", runtime.NumCPU()),
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		EventQueue: getEnv("WAR_EVENT_QUEUE", "war_events"),
		Port:       getEnv("PORT", "8080"),
	}
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvInt64(key string, def int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvLevel(key string, def logrus.Level) logrus.Level {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return def
	}
	return lvl
}
