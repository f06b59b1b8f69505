package codec

// ICodec is the interface for all session value codecs. Implementations
// turn arbitrary application values into the byte blobs the backing store
// persists, and back. Deserialize is also the lazy-materialization hook of
// the session collection, which consumes only that half of the interface.
type ICodec interface {
	// Serialize encodes a value into a byte blob.
	// It returns the serialized blob and an error if any.
	Serialize(value any) ([]byte, error)
	// Deserialize decodes a byte blob back into a value.
	// It returns the decoded value and an error if any.
	Deserialize(data []byte) (value any, err error)
}
