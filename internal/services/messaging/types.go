package messaging

import "github.com/hogwash-crew/hogwash/internal/services/outcome"

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Seed is an optional random seed for testing
	Seed int64
}

// GetOutcomeMessageInput contains parameters for an outcome announcement
type GetOutcomeMessageInput struct {
	Kind       outcome.Kind
	PlayerName string

	// Amount carries the points, drinks or power-ups involved, when the
	// outcome has one
	Amount int

	// FinishDrink marks the drink outcome's finish-your-drink variant
	FinishDrink bool
}

// GetOutcomeMessageOutput contains the selected announcement line
type GetOutcomeMessageOutput struct {
	Message string
	Icon    string
}

// GetTransferMessageInput contains parameters for a transfer announcement
type GetTransferMessageInput struct {
	From   string
	To     string
	Amount int
}

// GetTransferMessageOutput contains the selected announcement line
type GetTransferMessageOutput struct {
	Message string
	Icon    string
}
