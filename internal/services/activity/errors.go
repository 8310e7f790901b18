package activity

// ActivityError is a custom error type for activity feed errors
type ActivityError string

// Error implements the error interface
func (e ActivityError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrStoreUnavailable ActivityError = "remote store unavailable"
	ErrNilConfig        ActivityError = "config cannot be nil"
	ErrNilRepo          ActivityError = "activity repository cannot be nil"
	ErrNilClock         ActivityError = "clock cannot be nil"
	ErrNilUUIDGenerator ActivityError = "UUID generator cannot be nil"
)
