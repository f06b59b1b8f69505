package session

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IDeserializer is the single codec operation the collection depends on.
// It is the narrow read-side of codec.ICodec; any codec implementation
// satisfies it. The collection treats the returned value opaquely and
// caches it, so Deserialize is invoked at most once per key per
// collection instance.
type IDeserializer interface {
	// Deserialize decodes a serialized blob into an in-memory value.
	Deserialize(data []byte) (value any, err error)
}

// ICollection is the interface for the per-session key-value state bag.
//
// Keys are compared case-insensitively but reported in their first-seen
// casing. Values hydrated from a backing store are kept as raw bytes and
// only deserialized when first read. Every mutation (and every read of a
// value judged mutable, see the mutability policy in mutability.go) is
// recorded so that the session host can compute the exact delta to
// persist at the end of a request.
type ICollection interface {
	// Get returns the value for a key, materializing it from its
	// serialized form on first read. A missing key yields (nil, nil).
	// If the returned value is judged mutable, the key is marked
	// modified, since the caller may mutate it in place without ever
	// calling Set.
	Get(name string) (value any, err error)
	// GetAt is Get addressed by position in insertion order.
	GetAt(index int) (value any, err error)
	// Set inserts or updates the value for a key and marks it modified.
	Set(name string, value any)
	// SetAt is Set addressed by position in insertion order.
	SetAt(index int, value any) (err error)
	// Remove deletes a key. Removing a key whose value was never
	// materialized is not recorded as a deletion (see doc.go); removing
	// an absent key is a no-op.
	Remove(name string)
	// RemoveAt is Remove addressed by position in insertion order.
	RemoveAt(index int) (err error)
	// Clear removes all keys and marks every one of them deleted,
	// regardless of whether its value was ever materialized.
	Clear()
	// Count returns the number of keys currently in the collection.
	Count() int
	// Keys returns all keys in insertion order, in first-seen casing.
	Keys() []string
	// Hydrate populates a key with its serialized form without
	// materializing it and without marking anything dirty. It is meant
	// to be called once per stored key while loading a session.
	Hydrate(name string, data []byte)

	// ModifiedKeys returns the keys added or changed since the last
	// reset, sorted for deterministic output.
	ModifiedKeys() []string
	// DeletedKeys returns the keys deleted since the last reset, sorted
	// for deterministic output. Never overlaps ModifiedKeys.
	DeletedKeys() []string
	// Dirty reports whether any key was modified or deleted since the
	// last reset, or the flag was forced via SetDirty(true).
	Dirty() bool
	// SetDirty(false) clears both change sets and the forced flag
	// (commit-and-reset after a successful persist). SetDirty(true)
	// forces the flag without touching either set.
	SetDirty(dirty bool)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and optionally the underlying cause.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
	Err  error   // The underlying cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCIndexOutOfRange:
		errorCode = "RetCIndexOutOfRange"
	case RetCDeserializationFailed:
		errorCode = "RetCDeserializationFailed"
	default:
		errorCode = "Unknown"
	}

	if e.Err != nil {
		return fmt.Sprintf("SessionError (code %s): %s: %v", errorCode, e.Msg, e.Err)
	}
	return fmt.Sprintf("SessionError (code %s): %s", errorCode, e.Msg)
}

// Unwrap exposes the underlying cause so that codec errors stay reachable
// via errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
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
	RetCSuccess               RetCode = iota // 0: Operation executed successfully.
	RetCIndexOutOfRange                      // 1: Index-based access with an invalid index.
	RetCDeserializationFailed                // 2: The codec failed to deserialize a stored blob.
)
