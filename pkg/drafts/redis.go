package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each draft as a JSON value under "<prefix>:draft:<id>".
// Every save refreshes the TTL; zero TTL keeps drafts forever.
type RedisStore struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "forms"
	}
	return &RedisStore{db: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":draft:" + id
}

func (s *RedisStore) Save(ctx context.Context, d Draft) error {
	if err := validateDraft(d); err != nil {
		return err
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return errors.Join(ErrFailedToSaveDraft, err)
	}
	if err := s.db.Set(ctx, s.key(d.ID), payload, s.ttl).Err(); err != nil {
		return errors.Join(ErrFailedToSaveDraft, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (Draft, error) {
	payload, err := s.db.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return Draft{}, errors.Join(ErrFailedToLoadDraft, err)
	}

	var d Draft
	if err := json.Unmarshal(payload, &d); err != nil {
		return Draft{}, errors.Join(ErrCorruptedDraft, err)
	}
	return d, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.db.Del(ctx, s.key(id)).Result()
	if err != nil {
		return errors.Join(ErrFailedToDeleteDraft, err)
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// ConnectRedis connects to Redis, retrying RetryAttempts times with
// RetryInterval between attempts, within ConnectTimeout overall.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrRedisNotReady
}

// RedisHealthcheck pings the client.
func RedisHealthcheck(client redis.UniversalClient) Healthcheck {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
