package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/hogwash-crew/hogwash/internal/models"
)

// memoryRepository is a local-only Repository used as a fallback when the
// remote store cannot be reached. Nothing in it survives process restart.
type memoryRepository struct {
	mu       sync.RWMutex
	ledger   models.Ledger
	watchers map[int]chan models.Ledger
	nextID   int
}

// NewMemory creates an in-memory ledger repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		watchers: make(map[int]chan models.Ledger),
	}
}

// GetLedger returns the cached snapshot
func (r *memoryRepository) GetLedger(ctx context.Context) (*GetLedgerOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.ledger == nil {
		return nil, ErrLedgerNotFound
	}

	return &GetLedgerOutput{
		Ledger: r.ledger.Clone(),
	}, nil
}

// SaveLedger replaces the cached snapshot and notifies watchers
func (r *memoryRepository) SaveLedger(ctx context.Context, input *SaveLedgerInput) error {
	if input == nil || input.Ledger == nil {
		return errors.New("input and ledger cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ledger = input.Ledger.Clone()

	for _, ch := range r.watchers {
		select {
		case ch <- r.ledger.Clone():
		default:
			// A slow watcher drops intermediate snapshots; it will catch
			// up on the next write.
		}
	}

	return nil
}

// WatchLedger subscribes to local ledger changes
func (r *memoryRepository) WatchLedger(ctx context.Context) (<-chan models.Ledger, error) {
	r.mu.Lock()

	ch := make(chan models.Ledger, 8)
	id := r.nextID
	r.nextID++
	r.watchers[id] = ch

	if r.ledger != nil {
		ch <- r.ledger.Clone()
	}

	r.mu.Unlock()

	go func() {
		<-ctx.Done()

		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()

		close(ch)
	}()

	return ch, nil
}
