package domain

import "fmt"

// UnknownPersonaError: the requested persona is not one of the three fixed
// variants. Fatal to the call, never retried.
type UnknownPersonaError struct {
	Persona string
}

func (e *UnknownPersonaError) Error() string {
	return fmt.Sprintf("unknown persona %q", e.Persona)
}

// MissingIdentityError: a required userId or sessionId was not supplied.
// There is no implicit anonymous default; silent defaulting caused
// cross-session data bleed in an earlier incarnation of this system.
type MissingIdentityError struct {
	Field string
}

func (e *MissingIdentityError) Error() string {
	return fmt.Sprintf("missing identity: %s is required", e.Field)
}

// StoreFault: the underlying record store failed. Surfaced to the caller,
// never silently retried; the caller may retry the whole turn.
type StoreFault struct {
	Namespace string
	Key       string
	Err       error
}

func (e *StoreFault) Error() string {
	return fmt.Sprintf("fact store fault on %s/%s: %v", e.Namespace, e.Key, e.Err)
}

func (e *StoreFault) Unwrap() error { return e.Err }

// EngineFault: the external reasoning engine failed. Surfaced verbatim.
type EngineFault struct {
	ThreadKey ThreadKey
	Err       error
}

func (e *EngineFault) Error() string {
	return fmt.Sprintf("reasoning engine fault on thread %s: %v", e.ThreadKey, e.Err)
}

func (e *EngineFault) Unwrap() error { return e.Err }
