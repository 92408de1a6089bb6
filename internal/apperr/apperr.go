// Package apperr defines the closed set of failure kinds produced by the
// booking engine and its HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a coarse-grained classification callers branch on.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindIneligibleBooking Kind = "ineligible_booking"
	KindRoomFull          Kind = "room_full"
	KindInvalidInput      Kind = "invalid_input"
	KindPaymentRequired   Kind = "payment_required"
	KindUnauthorized      Kind = "unauthorized"
)

// Error carries a kind, a human readable message and the operation that
// produced it.
type Error struct {
	Op   string
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Msg
	if base == "" {
		base = string(e.Kind)
	}
	if e.Op != "" {
		base = e.Op + ": " + base
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches two *Error values of the same kind and message, so the
// package-level sentinels work with errors.Is even after WithOp.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// WithOp returns a copy of e annotated with the operation name.
func (e *Error) WithOp(op string) *Error {
	cp := *e
	cp.Op = op
	return &cp
}

// Sentinels. Compare with errors.Is.
var (
	ErrNotFound         = &Error{Kind: KindNotFound, Msg: "no result for this search"}
	ErrIneligible       = &Error{Kind: KindIneligibleBooking, Msg: "cannot book hotel room"}
	ErrAlreadyBooked    = &Error{Kind: KindIneligibleBooking, Msg: "user already has a booking"}
	ErrNotBookingOwner  = &Error{Kind: KindIneligibleBooking, Msg: "booking does not belong to user"}
	ErrRoomFull         = &Error{Kind: KindRoomFull, Msg: "room is fully booked"}
	ErrPaymentRequired  = &Error{Kind: KindPaymentRequired, Msg: "this enrollment hasn't been paid for"}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized, Msg: "you must be signed in to continue"}
	ErrInvalidBookingID = &Error{Kind: KindInvalidInput, Msg: "bookingId must be a positive integer"}
)

// InvalidInput builds an invalid_input error with the given message.
func InvalidInput(msg string, cause error) *Error {
	return &Error{Kind: KindInvalidInput, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when the
// chain holds none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
