package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/model"
)

// Redis stores the snapshot as a single JSON string value under key.
type Redis struct {
	rdb *redis.Client
	key string
	log *zap.Logger
}

// NewRedis returns a provider backed by rdb. The client must not be nil.
func NewRedis(rdb *redis.Client, key string, log *zap.Logger) *Redis {
	if rdb == nil {
		panic("nil redis client passed to NewRedis")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis{rdb: rdb, key: key, log: log}
}

func (r *Redis) Load(ctx context.Context) (model.Snapshot, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Snapshot{}, ErrNotExist
		}
		return model.Snapshot{}, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return Decode(data)
}

func (r *Redis) Save(ctx context.Context, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	r.log.Debug("snapshot saved", zap.String("key", r.key), zap.Int("bytes", len(data)))
	return nil
}
