package rules

import "errors"

// Refusal kinds. Match them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("validation failed")
	ErrAlreadyMember = errors.New("already a team member")
)

// Refusal is a terminal decision for the current action. Reason is safe to
// show to the caller.
type Refusal struct {
	Kind   error
	Reason string
}

func (r *Refusal) Error() string {
	return r.Reason
}

func (r *Refusal) Unwrap() error {
	return r.Kind
}

func NotFound(reason string) error {
	return &Refusal{Kind: ErrNotFound, Reason: reason}
}

func Forbidden(reason string) error {
	return &Refusal{Kind: ErrForbidden, Reason: reason}
}

func Invalid(reason string) error {
	return &Refusal{Kind: ErrValidation, Reason: reason}
}

func Conflict(reason string) error {
	return &Refusal{Kind: ErrAlreadyMember, Reason: reason}
}
