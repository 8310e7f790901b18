package game

// GameError is a custom error type for game-level errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNotAuthorized     GameError = "operator privileges required"
	ErrUnknownPlayer     GameError = "player is not on the roster"
	ErrHouseCannotGamble GameError = "the house does not gamble"
	ErrNilConfig         GameError = "config cannot be nil"
	ErrNilLedgerService  GameError = "ledger service cannot be nil"
	ErrNilCooldown       GameError = "cooldown service cannot be nil"
	ErrNilCredits        GameError = "credit services cannot be nil"
	ErrNilOutcome        GameError = "outcome service cannot be nil"
	ErrNilBroadcast      GameError = "broadcast service cannot be nil"
	ErrNilActivity       GameError = "activity service cannot be nil"
	ErrNilMessaging      GameError = "messaging service cannot be nil"
)
