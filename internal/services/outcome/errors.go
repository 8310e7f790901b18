package outcome

// OutcomeError is a custom error type for resolver-related errors
type OutcomeError string

// Error implements the error interface
func (e OutcomeError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnknownKind OutcomeError = "unknown outcome kind"
	ErrNilConfig   OutcomeError = "config cannot be nil"
	ErrNilRoller   OutcomeError = "roller cannot be nil"
)
