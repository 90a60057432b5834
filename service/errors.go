package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by direct document lookups for unknown keys.
// Workflow transitions triggered by interactions never surface it; they
// fall back to a fresh base record instead.
var ErrNotFound = errors.New("document not found")

// DecodeError reports a component identifier the codec could not parse.
type DecodeError struct {
	CustomID string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode component id %q: %s", e.CustomID, e.Reason)
}

// DispatchError reports a failed outbound send to Discord. Store state is
// authoritative; callers must not roll back a mutation because of it.
type DispatchError struct {
	Op  string
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.Op, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
