// Package host wires the session collection to a backing store and a
// codec, implementing the load/mutate/save lifecycle of one request:
//
//  1. Load hydrates a fresh session.ICollection with one blob per stored
//     key. Nothing is materialized and nothing is dirty at this point.
//  2. The application reads and mutates the collection; the collection
//     tracks which keys change.
//  3. Save asks the collection for its modified and deleted keys, writes
//     exactly that delta to the backing store and resets the dirty state.
//     A save of a clean collection is a no-op and skips the store round
//     trip entirely.
//
// The host is deliberately thin: all invariants live in the session
// collection, all persistence in the backing store. The host contributes
// the delta computation glue, structured logging and Prometheus-style
// counters (session loads/saves, items written/deleted) via the
// VictoriaMetrics metrics package.
//
// One collection instance is scoped to a single session's single in-flight
// request; hosts themselves are stateless and safe for concurrent use as
// long as each collection stays confined to its request.
package host
