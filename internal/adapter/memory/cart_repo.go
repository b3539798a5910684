package memory

import (
	"context"
	"sync"
	"time"

	"github.com/guitarshop/cart-service/internal/domain/entity"
	"github.com/guitarshop/cart-service/internal/repository"
)

// cartSnapshotRepository is an in-process snapshot store used by tests and
// storeless local runs. TTLs are ignored; the snapshot lives as long as the
// process.
type cartSnapshotRepository struct {
	mu       sync.RWMutex
	snapshot *entity.CartState
}

func NewCartSnapshotRepository() repository.CartSnapshotRepository {
	return &cartSnapshotRepository{}
}

func (r *cartSnapshotRepository) Load(_ context.Context) (*entity.CartState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.snapshot == nil {
		return nil, repository.ErrNotFound
	}
	state := r.snapshot.Clone()
	return &state, nil
}

func (r *cartSnapshotRepository) Save(_ context.Context, state entity.CartState, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := state.Clone()
	r.snapshot = &snapshot
	return nil
}

func (r *cartSnapshotRepository) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshot = nil
	return nil
}
