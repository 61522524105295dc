package photo

import "fmt"

// Kind classifies why an upload was rejected.
type Kind int

const (
	// KindValidation covers a missing file or a disallowed MIME type.
	KindValidation Kind = iota + 1
	// KindTooLarge means the file exceeded the configured size limit.
	KindTooLarge
	// KindProcessing covers decode, transform, encode and storage failures.
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTooLarge:
		return "too_large"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Error is returned by Service.Create for every failure. Message is safe to
// show to clients; Err carries the internal cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
