package codec

import (
	"bytes"
	"encoding/gob"
)

// NewGOBCodec creates a new codec using Go's binary gob format
func NewGOBCodec() ICodec {
	return &gobCodecImpl{}
}

// gobCodecImpl implements the ICodec interface using gob encoding
type gobCodecImpl struct {
}

// envelope wraps the value so that gob can encode it through an interface
// field and recover the concrete type on decode.
type envelope struct {
	V any
}

// Register makes a concrete application type known to gob so it can round
// trip through this codec. Built-in types need no registration. Must be
// called before the first Serialize/Deserialize of that type, typically
// from an init function.
func Register(value any) {
	gob.Register(value)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (g gobCodecImpl) Serialize(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(envelope{V: value}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobCodecImpl) Deserialize(data []byte) (any, error) {
	var env envelope
	dec := gob.NewDecoder(bytes.NewBuffer(data))
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	return env.V, nil
}
