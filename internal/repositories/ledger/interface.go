package ledger

import (
	"context"

	"github.com/hogwash-crew/hogwash/internal/models"
)

// Repository defines the interface for ledger document persistence
type Repository interface {
	// GetLedger retrieves the full ledger snapshot
	GetLedger(ctx context.Context) (*GetLedgerOutput, error)

	// SaveLedger replaces the entire ledger document (whole-document
	// overwrite, not a merge) and notifies subscribers
	SaveLedger(ctx context.Context, input *SaveLedgerInput) error

	// WatchLedger subscribes to ledger changes. The returned channel fires
	// immediately with the current snapshot (when one exists), then on
	// every subsequent change, until ctx is cancelled.
	WatchLedger(ctx context.Context) (<-chan models.Ledger, error)
}
