package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinereserve/internal/model"
)

func TestRedisUnreachableIsTransportError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	p := NewRedis(rdb, "cinereserve", nil)

	_, err := p.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotExist)
	assert.NotErrorIs(t, err, ErrCorrupt)

	assert.Error(t, p.Save(context.Background(), model.NewSnapshot()))
}

func TestNewRedisRejectsNilClient(t *testing.T) {
	assert.Panics(t, func() { NewRedis(nil, "k", nil) })
}
