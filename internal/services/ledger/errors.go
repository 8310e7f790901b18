package ledger

// LedgerError is a custom error type for ledger-related errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrStoreUnavailable     LedgerError = "remote store unavailable"
	ErrInsufficientFunds    LedgerError = "insufficient funds"
	ErrInsufficientPowerUps LedgerError = "insufficient power-ups"
	ErrInvalidTarget        LedgerError = "cannot transfer to yourself"
	ErrInvalidAmount        LedgerError = "amount must be positive"
	ErrUnknownPlayer        LedgerError = "player is not on the roster"
	ErrNilConfig            LedgerError = "config cannot be nil"
	ErrNilRepo              LedgerError = "ledger repository cannot be nil"
)
