package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnloop-backend/internal/logger"
)

// RecommendationEvent is published after every recommendation computation
// so downstream consumers (notifications, analytics) can react without
// polling the log table.
type RecommendationEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	Trigger   string    `json:"trigger"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

type RecoBus interface {
	Publish(ctx context.Context, event RecommendationEvent) error
	Close() error
}

type recoBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewRecoBus(log *logger.Logger) (RecoBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_RECO_CHANNEL"))
	if ch == "" {
		ch = "recommendation.generated"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &recoBus{
		log:     log.With("service", "RedisRecoBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *recoBus) Publish(ctx context.Context, event RecommendationEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis reco bus not initialized")
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal recommendation event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish recommendation event: %w", err)
	}
	return nil
}

func (b *recoBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
