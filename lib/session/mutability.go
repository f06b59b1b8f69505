package session

import (
	"reflect"
	"time"
)

// --------------------------------------------------------------------------
// Mutability Policy
// --------------------------------------------------------------------------

// IImmutableValue can be implemented by application types to declare that
// their values never change after construction. Reading such a value via
// Get does not mark its key modified.
type IImmutableValue interface {
	ImmutableSessionValue()
}

// isImmutableValue decides whether a value handed out by Get can be
// mutated by the caller. The policy is a deliberate over-approximation:
// only value kinds (numerics, booleans, strings, structs and arrays
// composed purely of value kinds), time.Time and types opting in via
// IImmutableValue count as immutable. Everything reachable through a
// pointer, slice, map, channel, function or interface is assumed mutable,
// so an in-place mutation of a returned reference is never silently lost
// at persist time.
func isImmutableValue(v any) bool {
	if v == nil {
		return true
	}

	switch v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128,
		time.Time:
		return true
	}

	if _, ok := v.(IImmutableValue); ok {
		return true
	}

	return isImmutableKind(reflect.TypeOf(v))
}

// isImmutableKind reports whether a type is a value kind composed purely
// of value kinds. time.Time needs its special case above because it
// carries a *Location field.
func isImmutableKind(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isImmutableKind(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isImmutableKind(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Ptr, Slice, Map, Chan, Func, Interface, UnsafePointer
		return false
	}
}
