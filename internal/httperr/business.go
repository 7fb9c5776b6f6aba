package httperr

import "errors"

// Kind classifies a business failure independently of how it is rendered.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindNotFound
	KindConflict
	KindInsufficientCredit
	KindInvitationInvalid
	KindExternalService
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInsufficientCredit:
		return "insufficient_credit"
	case KindInvitationInvalid:
		return "invitation_invalid"
	case KindExternalService:
		return "external_service"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func Invalid(code string) error            { return ErrBusiness(KindInvalidInput, code) }
func NotFoundErr(code string) error        { return ErrBusiness(KindNotFound, code) }
func Conflict(code string) error           { return ErrBusiness(KindConflict, code) }
func InsufficientCredit(code string) error { return ErrBusiness(KindInsufficientCredit, code) }
func InvitationInvalid(code string) error  { return ErrBusiness(KindInvitationInvalid, code) }
func External(code string) error           { return ErrBusiness(KindExternalService, code) }
func Forbidden(code string) error          { return ErrBusiness(KindForbidden, code) }

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, or 0 for anything else.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
