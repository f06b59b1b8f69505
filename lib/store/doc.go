// Package store provides the abstraction for persisting session state as
// one serialized blob per session item key. It is the collaborator the
// session host writes deltas to: because every item is addressable on its
// own, a save only touches the keys the collection reports as modified or
// deleted instead of rewriting the whole session.
//
// Key Components:
//
//   - IBackingStore Interface: The core abstraction defining session blob
//     persistence. All implementations share this common interface,
//     allowing applications to switch between different storage backends
//     without code changes.
//
//   - Error System: A structured error reporting mechanism using typed
//     error codes and descriptive messages, allowing applications to make
//     informed decisions based on specific error conditions rather than
//     generic errors.
//
// Implementations:
//
//	The package includes one implementation of the IBackingStore interface:
//
//	- Memory Store (mstore): A concurrent in-memory implementation meant
//	  for single-process deployments, testing and development. Data is not
//	  persisted between process restarts.
//	  Available in the "github.com/ValentinKolb/sstate/lib/store/mstore"
//	  package.
//
// The conformance suite in the "testing" subpackage verifies any
// implementation against the interface contract.
package store
