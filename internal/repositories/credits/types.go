package credits

import "github.com/hogwash-crew/hogwash/internal/models"

// GetCreditsOutput contains the result of retrieving a credit balance
type GetCreditsOutput struct {
	Balance *models.CreditBalance
}

// SaveCreditsInput contains parameters for replacing a credit balance
type SaveCreditsInput struct {
	Balance *models.CreditBalance
}
