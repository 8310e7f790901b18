package ledger

import "github.com/hogwash-crew/hogwash/internal/models"

// GetLedgerOutput contains the result of retrieving the ledger
type GetLedgerOutput struct {
	Ledger models.Ledger

	// Normalized reports whether any record was stored in a legacy or
	// partial shape and had to be upgraded during decode. Callers use it
	// to decide on a self-healing write-back.
	Normalized bool
}

// SaveLedgerInput contains parameters for replacing the ledger document
type SaveLedgerInput struct {
	Ledger models.Ledger
}
