// Package apperr carries the typed failure kinds surfaced by the decision,
// appeal and notification workflows.
package apperr

import "errors"

type Kind string

const (
	KindUnknown         Kind = ""
	KindConfiguration   Kind = "configuration"
	KindRateLimited     Kind = "upstream_rate_limited"
	KindPaymentRequired Kind = "upstream_payment_required"
	KindUpstream        Kind = "upstream_failure"
	KindPersistence     Kind = "persistence"
	KindPrecondition    Kind = "precondition_violation"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Wrap attaches a kind to err. A nil err yields nil.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool { return err != nil && KindOf(err) == kind }

func Validation(msg string) *Error   { return New(KindValidation, msg) }
func NotFound(msg string) *Error     { return New(KindNotFound, msg) }
func Precondition(msg string) *Error { return New(KindPrecondition, msg) }

func Persistence(msg string, err error) error { return Wrap(KindPersistence, msg, err) }

// Ensure keeps an already typed error as is and wraps anything else with kind.
func Ensure(kind Kind, msg string, err error) error {
	if err == nil || KindOf(err) != KindUnknown {
		return err
	}
	return Wrap(kind, msg, err)
}
