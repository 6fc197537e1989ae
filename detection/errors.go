package detection

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceUnavailable covers transport failures, timeouts and non-2xx
	// answers. Callers recover from it with the simulation.
	ErrServiceUnavailable = errors.New("detection service unavailable")
	// ErrContractViolation means the service answered 2xx with a body that
	// does not match the response schema
	ErrContractViolation = errors.New("detection service contract violation")
)

// Error records which model failed and why
type Error struct {
	Model Model
	Kind  error
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Model, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Model, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func unavailable(model Model, err error) error {
	return &Error{Model: model, Kind: ErrServiceUnavailable, Err: err}
}

func contractViolation(model Model, err error) error {
	return &Error{Model: model, Kind: ErrContractViolation, Err: err}
}
