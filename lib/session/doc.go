// Package session implements the change-tracking, lazily-materializing
// key-value collection that represents one user session's state bag. It
// sits between application code and a backing store that persists the bag
// as one serialized blob per key, and its purpose is to make the
// end-of-request write-back cheap: instead of re-serializing the whole
// bag, the session host asks the collection exactly which keys were
// added/changed and which were deleted since the last save point.
//
// The package focuses on:
//   - Ordinary mutable collection semantics (key and index access, stable
//     insertion order, case-insensitive keys reported in first-seen casing)
//   - Lazy materialization: values loaded from the store stay as raw bytes
//     until first read, then the codec result is cached
//   - Precise change tracking with mutually exclusive modified/deleted key
//     sets and a commit-and-reset dirty flag
//
// Key Components:
//
//   - ICollection Interface: The public surface of the collection. It is
//     created once per session load via NewCollection, populated either by
//     Hydrate (bulk rehydration, never dirty) or by Set (dirty), mutated
//     during request handling, and interrogated via ModifiedKeys,
//     DeletedKeys and Dirty at request end.
//
//   - Key Resolver: Maps every casing variant of a key to one canonical
//     casing chosen at first sight. The table is append-only for the
//     collection's lifetime, which is acceptable bounded growth for a
//     session-scoped instance.
//
//   - Change Set: Two mutually exclusive key sets (modified, deleted) plus
//     a forced flag. SetDirty(false) clears both sets atomically;
//     SetDirty(true) forces the flag without touching them.
//
//   - Mutability Policy: Get conservatively marks a key modified whenever
//     the returned value is a reference kind, because the caller can
//     mutate such a value in place without calling Set and the collection
//     has no way to detect that later. Value kinds, strings, time.Time and
//     types implementing IImmutableValue are exempt. The policy trades
//     some unnecessary writes for the guarantee that an in-place mutation
//     is never silently lost.
//
// Deletion of Unmaterialized Keys:
//
//	Removing a key that was hydrated from the store but never read does
//	NOT record a deletion: the application never observed the value, so
//	no store-side deletion signal is produced and the stored blob remains
//	in the backing store. This mirrors the behavior of the system this
//	package models and is covered by an explicit test; Clear is the
//	exception and marks every present key deleted regardless of
//	hydration state. Callers that need removal of unread keys persisted
//	should read the key first or use Clear.
//
// Thread Safety:
//
//	The collection is a passive data structure with no internal
//	goroutines. A single mutex covers the item container, the key
//	resolver and the change set, so all ICollection methods are safe for
//	concurrent use. The mutex exists primarily to protect concurrent
//	reads of different keys that race to materialize lazily; the codec
//	runs under the mutex and is therefore invoked at most once per key.
//	The codec is expected to be a pure in-memory transform.
//
// Error Handling:
//
//	All errors surface synchronously to the caller as *Error with a
//	RetCode. The collection performs no logging, swallowing or retries;
//	a codec failure propagates from Get with the cause reachable via
//	errors.Unwrap.
//
// Usage Example:
//
//	col := session.NewCollection(codec.NewJSONCodec())
//
//	// Session load: one Hydrate per stored key, nothing dirty.
//	col.Hydrate("cart", blob)
//
//	// Request handling.
//	v, err := col.Get("CART") // materializes, case-insensitive
//	col.Set("visits", 3)
//
//	// Request end: persist the delta, then reset.
//	writeBack(col.ModifiedKeys(), col.DeletedKeys())
//	col.SetDirty(false)
package session
