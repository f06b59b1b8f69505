package store

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IBackingStore is the generic interface for persisting session state.
// A session is addressed by its id and stored as one blob per item key,
// which is what makes delta writes possible: at the end of a request only
// the modified blobs are written and only the deleted keys are removed.
// All write operations return an error (nil on success), while read
// operations return the requested data along with an error (nil on success).
type IBackingStore interface {
	// LoadSession returns all item blobs stored for a session. A session
	// that was never written yields an empty map and no error.
	LoadSession(id string) (items map[string][]byte, err error)
	// WriteItems inserts or updates the blobs for the given item keys of
	// a session. Keys not present in items are left untouched.
	WriteItems(id string, items map[string][]byte) (err error)
	// DeleteItems removes the blobs for the given item keys of a session.
	// Keys that are not stored are ignored.
	DeleteItems(id string, keys []string) (err error)
	// DeleteSession removes a session and all its item blobs.
	DeleteSession(id string) (err error)
	// HasSession returns whether any item blob is stored for a session.
	HasSession(id string) (ok bool, err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "RetCInternalError"
	case RetCInvalidOperation:
		errorCode = "InvalidOperation"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("BackingStoreError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCInvalidOperation                // 2: Invalid operation.
)
