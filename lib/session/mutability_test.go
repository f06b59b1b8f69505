package session

import (
	"testing"
	"time"
)

type valueOnlyStruct struct {
	A int
	B float64
	C [4]byte
}

type structWithSlice struct {
	A int
	B []string
}

type optInType struct {
	data []byte
}

func (optInType) ImmutableSessionValue() {}

func TestIsImmutableValue(t *testing.T) {
	immutable := []any{
		nil,
		true,
		int(1), int8(1), int16(1), int32(1), int64(1),
		uint(1), uint8(1), uint16(1), uint32(1), uint64(1),
		float32(1), float64(1),
		complex64(1), complex128(1),
		"text",
		time.Now(),
		valueOnlyStruct{A: 1},
		[3]int{1, 2, 3},
		optInType{data: []byte("x")},
	}
	for _, v := range immutable {
		if !isImmutableValue(v) {
			t.Errorf("Expected %T (%v) to be immutable", v, v)
		}
	}

	mutable := []any{
		[]int{1},
		map[string]int{"a": 1},
		&valueOnlyStruct{},
		structWithSlice{A: 1},
		[2][]int{},
		make(chan int),
		func() {},
	}
	for _, v := range mutable {
		if isImmutableValue(v) {
			t.Errorf("Expected %T to be judged mutable", v)
		}
	}
}
