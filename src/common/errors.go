package common

import (
	"errors"
	"fmt"
)

// ErrType classifies the errors returned by the consensus core and its
// collaborators.
type ErrType uint32

const (
	// InvalidParent means a referenced parent is unknown or not causally prior
	// to the event being inserted.
	InvalidParent ErrType = iota
	// DuplicateGenesis means a creator tried to insert a second genesis event.
	DuplicateGenesis
	// UnknownEvent means a query referenced an id that was never assigned.
	UnknownEvent
	// KeyNotFound ...
	KeyNotFound
	// Empty ...
	Empty
	// ReplayMismatch means a replayed record was assigned a different id than
	// the one it was journaled with.
	ReplayMismatch
)

var errTypes = []string{
	"Invalid Parent",
	"Duplicate Genesis",
	"Unknown Event",
	"Not Found",
	"Empty",
	"Replay Mismatch",
}

// String ...
func (t ErrType) String() string {
	if int(t) < len(errTypes) {
		return errTypes[t]
	}
	return fmt.Sprintf("ErrType(%d)", uint32(t))
}

// ConsensusErr is the error type shared by the EventStore, the query interface
// of the ConsensusGraph, and the journal.
type ConsensusErr struct {
	dataType string
	errType  ErrType
	key      string
}

// NewConsensusErr ...
func NewConsensusErr(dataType string, errType ErrType, key string) ConsensusErr {
	return ConsensusErr{
		dataType: dataType,
		errType:  errType,
		key:      key,
	}
}

// Type returns the classification of the error.
func (e ConsensusErr) Type() ErrType {
	return e.errType
}

// Error ...
func (e ConsensusErr) Error() string {
	return fmt.Sprintf("%s, %s, %s", e.dataType, e.key, e.errType)
}

// Is checks that err, or any error it wraps, is a ConsensusErr of type t.
func Is(err error, t ErrType) bool {
	var cErr ConsensusErr
	return errors.As(err, &cErr) && cErr.errType == t
}
