package httperr

import "errors"

// Kind classifies a business failure so callers can react without
// matching on individual codes.
type Kind string

const (
	KindInvalidTransition  Kind = "invalid_transition"
	KindUnauthorized       Kind = "unauthorized"
	KindValidation         Kind = "validation_error"
	KindSlotConflict       Kind = "slot_conflict"
	KindAlreadyNegotiating Kind = "already_negotiating"
	KindNotFound           Kind = "not_found"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return string(e.Kind) + ": " + e.Code
}

// Is matches another BusinessError with the same kind and code, so
// errors.Is works with the package-level sentinels.
func (e BusinessError) Is(target error) bool {
	t, ok := target.(BusinessError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

func New(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

// ErrBusiness builds a validation failure.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}
