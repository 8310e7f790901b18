package credits

// CreditsError is a custom error type for credit-related errors
type CreditsError string

// Error implements the error interface
func (e CreditsError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInsufficientCredits CreditsError = "insufficient credits"
	ErrInvalidAmount       CreditsError = "amount must be positive"
	ErrOutsideWindow       CreditsError = "outside the daily window"
	ErrStoreUnavailable    CreditsError = "remote store unavailable"
	ErrNilConfig           CreditsError = "config cannot be nil"
	ErrNilRepo             CreditsError = "credits repository cannot be nil"
	ErrNilClock            CreditsError = "clock cannot be nil"
	ErrInvalidInterval     CreditsError = "refill interval must be positive"
)
