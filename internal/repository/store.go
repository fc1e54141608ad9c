package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/model"
	"github.com/iliyamo/cinereserve/internal/storage"
)

// CorruptNotice is the informational message exposed by Store.Notice after an
// unusable snapshot was replaced.
const CorruptNotice = "stored data was unreadable; started with an empty store"

// Options configure a Store.
type Options struct {
	// DefaultRows and DefaultCols apply when a showtime is added without a
	// layout. Zero means model.DefaultRows / model.DefaultCols.
	DefaultRows int
	DefaultCols int
	Logger      *zap.Logger
}

// Store is the aggregate root: movies, bookings and id counters, loaded from
// and saved to a storage.Provider as one snapshot. All operations are
// serialized by a single lock; mutations run against a copy of the state
// which replaces the live state only after it has been persisted.
type Store struct {
	mu       sync.RWMutex
	state    model.Snapshot
	provider storage.Provider
	log      *zap.Logger
	rows     int
	cols     int
	notice   string
}

// Open loads the store from p. A missing snapshot yields a seeded store; a
// corrupt or structurally invalid one is logged, replaced by a seeded store
// and reported through Notice. Both cases are saved immediately. Transport
// failures of the provider are returned.
func Open(ctx context.Context, p storage.Provider, opts Options) (*Store, error) {
	if p == nil {
		panic("nil provider passed to repository.Open")
	}
	s := &Store{
		provider: p,
		log:      opts.Logger,
		rows:     opts.DefaultRows,
		cols:     opts.DefaultCols,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.rows <= 0 {
		s.rows = model.DefaultRows
	}
	if s.cols <= 0 {
		s.cols = model.DefaultCols
	}

	snap, err := p.Load(ctx)
	if err == nil {
		if verr := snap.Validate(); verr != nil {
			err = fmt.Errorf("%w: %v", ErrCorruptStore, verr)
		}
	}
	switch {
	case err == nil:
		s.state = snap
		s.log.Info("store loaded",
			zap.Int("movies", len(snap.Movies)),
			zap.Int("bookings", len(snap.Bookings)))
		return s, nil
	case errors.Is(err, storage.ErrNotExist):
		s.log.Info("no stored data, seeding empty store")
	case errors.Is(err, ErrCorruptStore):
		s.log.Warn("stored data unusable, resetting store", zap.Error(err))
		s.notice = CorruptNotice
	default:
		return nil, fmt.Errorf("load store: %w", err)
	}

	s.state = model.NewSnapshot()
	if err := p.Save(ctx, s.state); err != nil {
		return nil, fmt.Errorf("save seeded store: %w", err)
	}
	return s, nil
}

// Notice returns a non-empty message when Open had to discard stored data.
func (s *Store) Notice() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notice
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Save persists the current state again.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider.Save(ctx, s.state)
}

// update applies fn to a copy of the state, persists the copy and only then
// makes it live. When fn or the save fails the live state is untouched.
func (s *Store) update(ctx context.Context, fn func(st *model.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.provider.Save(ctx, next); err != nil {
		return fmt.Errorf("persist store: %w", err)
	}
	s.state = next
	return nil
}

// view runs fn against the live state under the read lock. fn must not keep
// references into the state.
func (s *Store) view(fn func(st *model.Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}
