package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// NewBinaryCodec creates a new codec using a custom binary format
// optimized for speed and efficiency. It supports the primitive session
// value types only (nil, bool, integers, floats, strings, byte slices and
// time.Time); structured values need the gob or json codec.
func NewBinaryCodec() ICodec {
	return &binaryCodecImpl{}
}

// binaryCodecImpl implements ICodec using a custom binary format
type binaryCodecImpl struct {
}

// Type tags identifying the encoded value kind
const (
	tagNil     byte = 0
	tagBool    byte = 1
	tagInt64   byte = 2
	tagUint64  byte = 3
	tagFloat64 byte = 4
	tagString  byte = 5
	tagBytes   byte = 6
	tagTime    byte = 7
)

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

// Serialize encodes the value as a one-byte type tag followed by the
// value's big-endian payload. Integer types widen to int64/uint64, so a
// value serialized as int8 deserializes as int64.
func (b binaryCodecImpl) Serialize(value any) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return []byte{tagNil}, nil
	case bool:
		if v {
			return []byte{tagBool, 1}, nil
		}
		return []byte{tagBool, 0}, nil
	case int:
		return encodeUint64(tagInt64, uint64(int64(v))), nil
	case int8:
		return encodeUint64(tagInt64, uint64(int64(v))), nil
	case int16:
		return encodeUint64(tagInt64, uint64(int64(v))), nil
	case int32:
		return encodeUint64(tagInt64, uint64(int64(v))), nil
	case int64:
		return encodeUint64(tagInt64, uint64(v)), nil
	case uint:
		return encodeUint64(tagUint64, uint64(v)), nil
	case uint8:
		return encodeUint64(tagUint64, uint64(v)), nil
	case uint16:
		return encodeUint64(tagUint64, uint64(v)), nil
	case uint32:
		return encodeUint64(tagUint64, uint64(v)), nil
	case uint64:
		return encodeUint64(tagUint64, v), nil
	case float32:
		return encodeUint64(tagFloat64, math.Float64bits(float64(v))), nil
	case float64:
		return encodeUint64(tagFloat64, math.Float64bits(v)), nil
	case string:
		result := make([]byte, 1+len(v))
		result[0] = tagString
		copy(result[1:], v)
		return result, nil
	case []byte:
		result := make([]byte, 1+len(v))
		result[0] = tagBytes
		copy(result[1:], v)
		return result, nil
	case time.Time:
		data, err := v.MarshalBinary()
		if err != nil {
			return nil, err
		}
		result := make([]byte, 1+len(data))
		result[0] = tagTime
		copy(result[1:], data)
		return result, nil
	default:
		return nil, fmt.Errorf("binary codec does not support values of type %T", value)
	}
}

func (b binaryCodecImpl) Deserialize(data []byte) (any, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("data too short for type tag")
	}

	tag := data[0]
	payload := data[1:]

	switch tag {
	case tagNil:
		return nil, nil
	case tagBool:
		if len(payload) < 1 {
			return nil, fmt.Errorf("data too short for bool value")
		}
		return payload[0] != 0, nil
	case tagInt64:
		bits, err := decodeUint64(payload)
		if err != nil {
			return nil, err
		}
		return int64(bits), nil
	case tagUint64:
		return decodeUint64(payload)
	case tagFloat64:
		bits, err := decodeUint64(payload)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(bits), nil
	case tagString:
		return string(payload), nil
	case tagBytes:
		value := make([]byte, len(payload))
		copy(value, payload)
		return value, nil
	case tagTime:
		var value time.Time
		if err := value.UnmarshalBinary(payload); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unknown type tag %d", tag)
	}
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

func encodeUint64(tag byte, bits uint64) []byte {
	result := make([]byte, 9)
	result[0] = tag
	binary.BigEndian.PutUint64(result[1:], bits)
	return result
}

func decodeUint64(payload []byte) (uint64, error) {
	if len(payload) < 8 {
		return 0, fmt.Errorf("data too short for 8-byte value")
	}
	return binary.BigEndian.Uint64(payload), nil
}
