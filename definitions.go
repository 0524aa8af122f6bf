package main

import (
	"context"
	"errors"
	"sync"

	"github.com/go-redis/redis/v8"
)

// MaxScores is the number of entries kept on the leaderboard.
const MaxScores = 10

var ErrStorageRead = errors.New("leaderboard storage is unreadable")

// ScoreStore owns the persisted leaderboard. Every call re-reads storage.
type ScoreStore interface {
	Load(ctx context.Context) ([]float64, error)
	SubmitScore(ctx context.Context, score float64) (float64, error)
}

// Pinger is implemented by stores that can report whether their backing
// storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Host           string `env:"HOST" envDefault:"0.0.0.0"`
	Port           int    `env:"PORT" envDefault:"5000"`
	StoragePath    string `env:"STORAGE_PATH" envDefault:"scores.json"`
	StaticDir      string `env:"STATIC_DIR" envDefault:"static"`
	RedisURL       string `env:"REDIS_URL"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"scoreboard"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

type FileStore struct {
	path  string
	mutex *sync.Mutex
}

type RedisStore struct {
	client *redis.Client
	mutex  *sync.Mutex
	key    string
}

type RedisConfig struct {
	RedisURL string
	Prefix   string
}

type SaveScoreRequest struct {
	Score *float64 `json:"score"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type SaveScoreResponse struct {
	Status string  `json:"status"`
	Score  float64 `json:"score"`
}
