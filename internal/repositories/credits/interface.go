package credits

import (
	"context"
)

// Repository defines the interface for credit balance persistence
type Repository interface {
	// GetCredits retrieves the credit balance document
	GetCredits(ctx context.Context) (*GetCreditsOutput, error)

	// SaveCredits replaces the credit balance document
	SaveCredits(ctx context.Context, input *SaveCreditsInput) error
}
