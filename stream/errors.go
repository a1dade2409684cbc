package stream

import "fmt"

// Kind is a machine-readable error taxonomy for the stream package.
type Kind string

const (
	// KindUsage marks misuse caught synchronously at build time: bad
	// concurrency, bad batch parameters, a nil source factory.
	KindUsage Kind = "USAGE_ERROR"
	// KindSourceType marks a source factory that produced a nil iterator,
	// returned when the source is compiled (by Iterator, or when an
	// enclosing Chain or Flatten reaches it), not on a later Next.
	KindSourceType Kind = "SOURCE_TYPE_ERROR"
	// KindElement marks any error raised by user-supplied func/predicate/when
	// or by the source iterator's Next. This is the only kind Catch may
	// suppress.
	KindElement Kind = "ELEMENT_ERROR"
	// KindWorker marks an internal invariant violation inside a worker
	// goroutine. Always fatal; Catch never suppresses it.
	KindWorker Kind = "WORKER_ERROR"
)

// Error is the stream package's unified error type.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func newUsageError(format string, args ...any) *Error {
	return &Error{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

func newSourceTypeError(format string, args ...any) *Error {
	return &Error{Kind: KindSourceType, Message: fmt.Sprintf(format, args...)}
}

func newWorkerError(format string, args ...any) *Error {
	return &Error{Kind: KindWorker, Message: fmt.Sprintf(format, args...)}
}

// wrapElement wraps cause, from user code or a source iterator's Next, as a
// KindElement error eligible for Catch. A cause already carrying a stream
// Kind is returned unchanged so wrapping never double-wraps.
func wrapElement(cause error) error {
	if cause == nil {
		return nil
	}
	if se, ok := cause.(*Error); ok {
		return se
	}
	return &Error{Kind: KindElement, Message: cause.Error(), Cause: cause}
}

// Is reports whether err is an *Error of the given kind, unwrapping as
// needed. Used by Catch to offer only KindElement errors to its predicate;
// Catch has no configurable kind set.
func Is(err error, kind Kind) bool {
	for err != nil {
		if se, ok := err.(*Error); ok {
			return se.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
