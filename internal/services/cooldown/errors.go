package cooldown

// CooldownError is a custom error type for cooldown-related errors
type CooldownError string

// Error implements the error interface
func (e CooldownError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrOnCooldown       CooldownError = "player is on cooldown"
	ErrWrongPlayer      CooldownError = "cannot gamble as another player"
	ErrStoreUnavailable CooldownError = "remote store unavailable"
	ErrNilConfig        CooldownError = "config cannot be nil"
	ErrNilRepo          CooldownError = "cooldown repository cannot be nil"
	ErrNilClock         CooldownError = "clock cannot be nil"
)
