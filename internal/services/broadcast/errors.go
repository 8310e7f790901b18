package broadcast

// BroadcastError is a custom error type for event bus errors
type BroadcastError string

// Error implements the error interface
func (e BroadcastError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrStoreUnavailable BroadcastError = "remote store unavailable"
	ErrEmptyAssignments BroadcastError = "assignments cannot be empty"
	ErrNilConfig        BroadcastError = "config cannot be nil"
	ErrNilRepo          BroadcastError = "broadcast repository cannot be nil"
	ErrNilClock         BroadcastError = "clock cannot be nil"
	ErrNilUUIDGenerator BroadcastError = "UUID generator cannot be nil"
)
