package messaging

import "context"

// Service defines the interface for flavor messaging
type Service interface {
	// GetOutcomeMessage returns an announcement line for a gambling outcome
	GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error)

	// GetTransferMessage returns an announcement line for a point transfer
	GetTransferMessage(ctx context.Context, input *GetTransferMessageInput) (*GetTransferMessageOutput, error)
}
