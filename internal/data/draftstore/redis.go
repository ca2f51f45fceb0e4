package draftstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no draft payload exists for the session.
var ErrNotFound = errors.New("draft not found")

// Store holds the transient, session-scoped draft payload the hero search
// widget hands off to the wizard. The payload is opaque JSON here; only the
// wizard normalizer understands its shape. Callers clear a draft after a
// successful hydrate and must leave it in place after a parse failure.
type Store interface {
	Put(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Clear(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisStore(client *redis.Client, log *zap.Logger) Store {
	return &redisStore{
		client: client,
		log:    log.With(zap.String("store", "draft")),
	}
}

func key(sessionID string) string {
	return "wizard:draft:" + sessionID
}

func (s *redisStore) Put(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(sessionID), payload, ttl).Err(); err != nil {
		s.log.Error("Failed to store draft",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return fmt.Errorf("store draft for session %s: %w", sessionID, err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	payload, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error("Failed to read draft",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("read draft for session %s: %w", sessionID, err)
	}
	return payload, nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		s.log.Error("Failed to clear draft",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return fmt.Errorf("clear draft for session %s: %w", sessionID, err)
	}
	return nil
}
