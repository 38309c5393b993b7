package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/symptom-diary/backend/internal/pipeline"
)

// ErrSessionNotFound is returned when a dashboard session expired or never existed.
var ErrSessionNotFound = errors.New("dashboard session not found")

const sessionKeyPrefix = "dashboard:session:"

// Snapshot is the per-session state: the enriched meals and symptom
// reports of one account, kept as tables so they survive the round trip
// through the store.
type Snapshot struct {
	AccountID int64           `json:"account_id"`
	Heading   string          `json:"heading"`
	Meals     *pipeline.Table `json:"meals"`
	Symptoms  *pipeline.Table `json:"symptoms"`
	CreatedAt time.Time       `json:"created_at"`
}

// RedisSessionStore keeps snapshots in redis under a TTL that is renewed
// on every read.
type RedisSessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// Ensure RedisSessionStore implements ISessionStore
var _ ISessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a new RedisSessionStore instance
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{redis: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create stores a snapshot and returns its new session id.
func (s *RedisSessionStore) Create(ctx context.Context, snapshot *Snapshot) (string, error) {
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	id := uuid.New().String()
	if err := s.redis.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return id, nil
}

// Get loads a snapshot.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	data, err := s.redis.GetEx(ctx, sessionKey(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snapshot, nil
}

// Delete removes a snapshot.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}
