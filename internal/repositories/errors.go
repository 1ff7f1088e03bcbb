package repositories

import (
	"errors"
	"fmt"

	"github.com/sociafam/backend/internal/models"
)

var (
	// ErrNotFound is returned when a referenced row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized is returned when the actor lacks rights over the target row
	ErrUnauthorized = errors.New("not allowed to act on this record")
	// ErrSelfRequest is returned when a user targets themselves with a friend request
	ErrSelfRequest = errors.New("cannot send a friend request to yourself")
)

// ConflictError reports an existing relationship that blocks a new friend
// request, carrying the pairwise state as seen by the initiator.
type ConflictError struct {
	State models.PairState
}

func (e *ConflictError) Error() string {
	switch e.State {
	case models.PairBlocked:
		return "user is blocked"
	case models.PairAccepted:
		return "already friends"
	default:
		return "friend request already sent"
	}
}

// StoreError wraps a failure from the underlying store. Callers never retry
// internally; the error propagates to the transport layer.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
