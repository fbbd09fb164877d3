package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of a request so the handler can decide what the sender sees.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindFormat is bad or incomplete input. The message explains the expected format.
	KindFormat
	// KindNotFound means no geocoding match or no imagery for the date and location.
	KindNotFound
	// KindUpstream is a failed provider call. Its message is never shown to the sender.
	KindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Error is a classified request failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewFormatError(message string) error {
	return &Error{Kind: KindFormat, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewUpstreamError(message string, cause error) error {
	return &Error{Kind: KindUpstream, Message: message, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage returns the sender-facing text of a classified error.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

var ErrSendingReplyFailed = errors.New("failed to send reply")
