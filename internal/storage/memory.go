package storage

import (
	"context"
	"sync"

	"github.com/iliyamo/cinereserve/internal/model"
)

// Memory keeps the encoded snapshot in process memory. It is used by tests
// and by STORE_DRIVER=memory for throwaway sessions.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
	// FailSave, when set, is returned by Save instead of storing.
	FailSave error
}

// NewMemory returns an empty provider; Load reports ErrNotExist until the
// first Save.
func NewMemory() *Memory { return &Memory{} }

// NewMemoryWith returns a provider preloaded with raw snapshot bytes.
func NewMemoryWith(raw []byte) *Memory { return &Memory{data: raw} }

func (m *Memory) Load(ctx context.Context) (model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return model.Snapshot{}, ErrNotExist
	}
	return Decode(m.data)
}

func (m *Memory) Save(ctx context.Context, snap model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

// Raw returns the last saved bytes.
func (m *Memory) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Saves counts successful saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
