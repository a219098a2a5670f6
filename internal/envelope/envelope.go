// Package envelope carries the tri-state result of an asynchronous request:
// Loading, Success with a payload, or Error with a message.
package envelope

// Status tags the variant held by an Envelope.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Envelope is a tagged union over one request cycle. Data is meaningful only
// when Status is StatusSuccess, Message only when Status is StatusError.
// Producers emit Loading synchronously before starting remote work, then
// exactly one terminal variant when the call settles.
type Envelope[T any] struct {
	Status  Status
	Data    T
	Message string
}

// Loading returns the non-terminal variant.
func Loading[T any]() Envelope[T] {
	return Envelope[T]{Status: StatusLoading}
}

// Success wraps a settled payload.
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Status: StatusSuccess, Data: data}
}

// Failure wraps a human-readable failure message.
func Failure[T any](message string) Envelope[T] {
	return Envelope[T]{Status: StatusError, Message: message}
}
