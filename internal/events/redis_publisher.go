package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Publisher = (*RedisPublisher)(nil)

// RedisPublisher appends events to Redis streams.
type RedisPublisher struct {
	client *redis.Client
	keys   *KeyBuilder
	maxLen int64
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	Namespace    string
	MaxLen       int64 // approximate cap per stream, 0 = unbounded
}

// NewRedisPublisher connects and pings Redis before returning.
func NewRedisPublisher(cfg RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, NewPublishError("connect", "", fmt.Errorf("%w: %v", ErrPublisherUnavailable, err))
	}

	return NewRedisPublisherWithClient(client, cfg.Namespace, cfg.MaxLen), nil
}

func NewRedisPublisherWithClient(client *redis.Client, namespace string, maxLen int64) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		keys:   NewKeyBuilder(namespace),
		maxLen: maxLen,
	}
}

func (r *RedisPublisher) Publish(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return NewPublishError("xadd", "", err)
	}

	stream := r.keys.Stream(event.Type)
	args := &redis.XAddArgs{
		Stream: stream,
		Values: event.Values(),
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}

	if err := r.client.XAdd(ctx, args).Err(); err != nil {
		return NewPublishError("xadd", stream, err)
	}
	return nil
}

func (r *RedisPublisher) HealthCheck(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return NewPublishError("ping", "", err)
	}
	return nil
}

func (r *RedisPublisher) Close() error {
	if err := r.client.Close(); err != nil {
		return NewPublishError("close", "", err)
	}
	return nil
}

func (r *RedisPublisher) GetKeyBuilder() *KeyBuilder {
	return r.keys
}
