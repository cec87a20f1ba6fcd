package events

import "errors"

var (
	// ErrPublisherUnavailable возникает при проблемах с подключением к Redis
	ErrPublisherUnavailable = errors.New("event publisher unavailable")

	// ErrInvalidEvent возникает когда у события нет типа или кода
	ErrInvalidEvent = errors.New("invalid event")
)

// PublishError - структурированная ошибка публикации
type PublishError struct {
	Op     string // "xadd", "ping", "close"
	Stream string
	Err    error
}

func (e *PublishError) Error() string {
	if e.Stream != "" {
		return "events " + e.Op + " '" + e.Stream + "': " + e.Err.Error()
	}
	return "events " + e.Op + ": " + e.Err.Error()
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

func NewPublishError(op, stream string, err error) error {
	return &PublishError{
		Op:     op,
		Stream: stream,
		Err:    err,
	}
}
