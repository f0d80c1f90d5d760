package drafts

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sergiomvj/lifewayrepoclean-sub000/pkg/logger"
)

// Backend bundles an opened store with its probe and cleanup.
type Backend struct {
	Store       Store
	Healthcheck Healthcheck
	Close       func(ctx context.Context) error
}

func noopClose(context.Context) error { return nil }

// Open connects the backend named by cfg.Driver. Postgres migrations run
// first when AutoMigrate is set.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*Backend, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("drafts"), slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case "", DriverMemory:
		log.DebugContext(ctx, "using in-memory draft store")
		return &Backend{
			Store:       NewMemoryStore(),
			Healthcheck: func(context.Context) error { return nil },
			Close:       noopClose,
		}, nil

	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "connected to redis")
		return &Backend{
			Store:       NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.TTL),
			Healthcheck: RedisHealthcheck(client),
			Close:       func(context.Context) error { return client.Close() },
		}, nil

	case DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := Migrate(ctx, pool, cfg.Postgres.MigrationsTable, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.InfoContext(ctx, "connected to postgres")
		return &Backend{
			Store:       NewPostgresStore(pool),
			Healthcheck: PostgresHealthcheck(pool),
			Close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "connected to mongodb")
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return &Backend{
			Store:       NewMongoStore(coll),
			Healthcheck: MongoHealthcheck(client),
			Close:       client.Disconnect,
		}, nil
	}

	return nil, errors.Join(ErrUnknownDriver, errors.New(cfg.Driver))
}
