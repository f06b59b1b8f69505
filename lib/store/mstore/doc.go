// Package mstore implements an in-memory, single-process backing store
// based on the store.IBackingStore interface. Session blobs are held in
// concurrent hash maps (one per session) and are not persisted between
// process restarts.
//
// Key Features:
//   - Pure in-memory storage without persistence
//   - Lock-free reads and fine-grained concurrent writes via xsync.MapOf
//   - Defensive copying of blobs on write and load, so callers and the
//     store never alias each other's byte slices
//
// Thread Safety:
//
//	All operations are safe for concurrent use. Each session's blobs live
//	in their own xsync.MapOf, so writes to different sessions never
//	contend.
//
// Suitable Use Cases:
//
//	The memory store is ideal for:
//	- Ephemeral session data that doesn't need to survive restarts
//	- Single-node applications
//	- Testing and development environments
package mstore
