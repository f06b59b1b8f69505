// Package codec provides serialization of session values into the byte
// blobs the backing store persists per key. It defines a common interface
// and multiple implementations with different trade-offs; the session
// collection invokes the Deserialize half lazily, once per key, when a
// hydrated value is first read.
//
// Key Components:
//
//   - ICodec: Core interface that all codec implementations must satisfy.
//
//   - binaryCodecImpl: Custom tag-based binary format for primitive
//     session values (nil, bool, integers, floats, strings, byte slices,
//     time.Time). Compact and allocation-light, but structured values are
//     rejected with an error.
//
//   - gobCodecImpl: Implementation using Go's built-in gob encoding.
//     Type-preserving for registered concrete types; applications store
//     custom struct types by calling Register first.
//
//   - jsonCodecImpl: Implementation using JSON encoding, useful for
//     debugging or interoperability with other systems. Not
//     type-preserving: objects decode as map[string]any and all numbers
//     as float64.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Codecs are typically created once and shared between the session
//	collection and the session host:
//
//	  c := codec.NewGOBCodec()
//	  col := session.NewCollection(c)
//	  blob, err := c.Serialize(value)
//	  // ... persist blob ...
//	  col.Hydrate("key", blob)
package codec
