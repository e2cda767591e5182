// Package httperr defines the classified protocol errors raised when an HTTP
// exchange fails. The classification is the contract between whatever
// transmission layer detects a failure and the retry logic deciding what to
// do about it: a retriable error is safe to re-attempt unmodified, a client
// error reports a condition retrying will not fix, a fatal error should
// abort the exchange entirely, and a generic error leaves the policy to the
// caller.
package httperr

import (
	"errors"

	"github.com/zostay/go-httpmsg/message"
)

// Kind classifies a protocol error.
type Kind int

const (
	// KindGeneric is an unspecified protocol failure.
	KindGeneric Kind = iota

	// KindRetriable marks a failure whose originating operation may be
	// safely retried unmodified.
	KindRetriable

	// KindClient marks a response reporting a client-side condition that
	// retrying unmodified will not fix.
	KindClient

	// KindFatal marks an unrecoverable failure.
	KindFatal
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRetriable:
		return "retriable protocol error"
	case KindClient:
		return "client protocol error"
	case KindFatal:
		return "fatal protocol error"
	default:
		return "protocol error"
	}
}

// Retriable reports whether the kind permits retrying the originating
// operation unmodified.
func (k Kind) Retriable() bool {
	return k == KindRetriable
}

// Sentinels for classifying an error with errors.Is. Every Error matches
// ErrProtocol regardless of kind. The others match only an Error of exactly
// their kind.
var (
	ErrProtocol  = errors.New("protocol error")
	ErrRetriable = errors.New("retriable protocol error")
	ErrClient    = errors.New("client protocol error")
	ErrFatal     = errors.New("fatal protocol error")
)

// Error is a classified protocol error. It carries the kind, a message, and
// a reference to the response that triggered the classification. The
// response is borrowed for inspection, the error does not copy or otherwise
// manage it. An Error is immutable once constructed.
type Error struct {
	kind Kind
	msg  string
	resp *message.Response
}

// New creates an error of the given kind. The response may be nil when the
// failure happened before any response arrived.
func New(kind Kind, msg string, resp *message.Response) *Error {
	return &Error{
		kind: kind,
		msg:  msg,
		resp: resp,
	}
}

// NewGeneric creates an unspecified protocol error.
func NewGeneric(msg string, resp *message.Response) *Error {
	return New(KindGeneric, msg, resp)
}

// NewRetriable creates an error whose originating operation may be safely
// retried unmodified.
func NewRetriable(msg string, resp *message.Response) *Error {
	return New(KindRetriable, msg, resp)
}

// NewClient creates an error for a response reporting a client-side
// condition that retrying unmodified will not fix.
func NewClient(msg string, resp *message.Response) *Error {
	return New(KindClient, msg, resp)
}

// NewFatal creates an unrecoverable protocol error.
func NewFatal(msg string, resp *message.Response) *Error {
	return New(KindFatal, msg, resp)
}

// Error returns the message prefixed with the name of the kind. An error
// created without a message returns the kind name alone.
func (e *Error) Error() string {
	if e.msg == "" {
		return e.kind.String()
	}
	return e.kind.String() + ": " + e.msg
}

// Kind returns the classification of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the message the error was created with.
func (e *Error) Message() string {
	return e.msg
}

// Response returns the response associated with the error, which may be nil
// when the failure happened before any response arrived.
func (e *Error) Response() *message.Response {
	return e.resp
}

// Retriable reports whether the originating operation may be safely retried
// unmodified.
func (e *Error) Retriable() bool {
	return e.kind.Retriable()
}

// Is matches the classification sentinels. Every Error matches ErrProtocol
// and an Error of a specific kind also matches that kind's sentinel.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrProtocol:
		return true
	case ErrRetriable:
		return e.kind == KindRetriable
	case ErrClient:
		return e.kind == KindClient
	case ErrFatal:
		return e.kind == KindFatal
	default:
		return false
	}
}

// FieldName names one of the structured fields every Error exposes.
type FieldName string

// The fields an Error exposes for destructuring.
const (
	FieldMessage  FieldName = "message"
	FieldResponse FieldName = "response"
)

// Field is one field of the structured view of an Error. Value holds a
// string for FieldMessage and a *message.Response for FieldResponse.
type Field struct {
	Name  FieldName
	Value any
}

// Fields returns the structured view of the error for callers that want to
// destructure it. With no arguments it returns both fields, message then
// response. With arguments it returns only the requested fields, in the
// order requested, dropping names the error does not have.
func (e *Error) Fields(names ...FieldName) []Field {
	if len(names) == 0 {
		names = []FieldName{FieldMessage, FieldResponse}
	}

	fs := make([]Field, 0, len(names))
	for _, n := range names {
		switch n {
		case FieldMessage:
			fs = append(fs, Field{Name: FieldMessage, Value: e.msg})
		case FieldResponse:
			fs = append(fs, Field{Name: FieldResponse, Value: e.resp})
		}
	}

	return fs
}
