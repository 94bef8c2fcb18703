package appointment

import (
	"errors"
	"fmt"
)

// Kind classifies failures so that any front end can render them
type Kind int

const (
	KindUnknown Kind = iota
	// store I/O failed, caller should keep its previous state
	KindStorage
	KindMissingFields
	KindInvalidDate
	KindInvalidSlot
	KindUnknownDoctor
	KindDuplicateID
	// status other than pending or confirmed
	KindInvalidStatus
	// delete with nothing stored or an id that isn't stored
	KindNothingToRemove
)

var kindNames = []string{
	KindUnknown:         "unknown",
	KindStorage:         "storage",
	KindMissingFields:   "missing fields",
	KindInvalidDate:     "invalid date",
	KindInvalidSlot:     "invalid slot",
	KindUnknownDoctor:   "unknown doctor",
	KindDuplicateID:     "duplicate id",
	KindInvalidStatus:   "invalid status",
	KindNothingToRemove: "nothing to remove",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by Repository and Validate
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrInvalidDate)
// works for errors with a more specific message
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrStorage         = &Error{Kind: KindStorage, Msg: "storage failure"}
	ErrMissingFields   = &Error{Kind: KindMissingFields, Msg: "missing fields"}
	ErrInvalidDate     = &Error{Kind: KindInvalidDate, Msg: "invalid date"}
	ErrInvalidSlot     = &Error{Kind: KindInvalidSlot, Msg: "invalid time slot"}
	ErrUnknownDoctor   = &Error{Kind: KindUnknownDoctor, Msg: "unknown doctor"}
	ErrDuplicateID     = &Error{Kind: KindDuplicateID, Msg: "duplicate id"}
	ErrInvalidStatus   = &Error{Kind: KindInvalidStatus, Msg: "invalid status"}
	ErrNothingToRemove = &Error{Kind: KindNothingToRemove, Msg: "nothing to remove"}
)

// KindOf returns KindUnknown for nil and for errors not from this package
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func storageError(msg string, err error) error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// Message is the text we show to the user for err
func Message(err error) string {
	if err == nil {
		return ""
	}
	switch KindOf(err) {
	case KindStorage:
		return "Couldn't access your appointments. Please try again."
	case KindMissingFields:
		return "Please fill in all fields."
	case KindInvalidDate:
		return "Please pick a date within the next 3 months."
	case KindInvalidSlot:
		return "Please pick one of the available times."
	case KindUnknownDoctor:
		return "Please select a doctor from the list."
	case KindDuplicateID:
		return "This appointment is already scheduled."
	case KindInvalidStatus:
		return "This appointment has an unknown status."
	case KindNothingToRemove:
		return "This appointment can't be removed."
	}
	return "Something went wrong."
}
