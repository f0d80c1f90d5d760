// Package drafts persists in-progress form sessions.
//
// A Draft records the current step, visited steps, touched fields and the
// raw form values. Four backends implement Store:
//
//   - MemoryStore keeps drafts in a map and is the default.
//   - RedisStore writes JSON payloads with a TTL.
//   - PostgresStore upserts into the form_drafts table (goose migrations are
//     embedded and applied by Migrate).
//   - MongoStore keeps one document per draft.
//
// Open picks a backend from Config, which is loaded from the environment:
//
//	var cfg drafts.Config
//	config.MustLoad(&cfg)
//	backend, err := drafts.Open(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer backend.Close(ctx)
//
// Load and Delete return ErrDraftNotFound for unknown IDs on every backend.
package drafts
