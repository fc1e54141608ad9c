// Package storage implements the persistence providers for the reservation
// store. Every provider writes the whole snapshot at once; there are no
// partial or incremental writes.
package storage

import (
	"context"
	"errors"

	"github.com/iliyamo/cinereserve/internal/model"
)

// ErrNotExist is returned by Load when no snapshot has been saved yet.
var ErrNotExist = errors.New("snapshot does not exist")

// ErrCorrupt is returned by Load when a snapshot exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt store")

// Provider loads and saves full store snapshots.
type Provider interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Save(ctx context.Context, snap model.Snapshot) error
}
