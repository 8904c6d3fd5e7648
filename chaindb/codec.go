package chaindb

import (
	"encoding/json"
	"fmt"
	"reflect"

	collcodec "cosmossdk.io/collections/codec"
)

// JSONValue returns a value codec storing T as canonical JSON. Struct field
// order is fixed by the type, so every node produces identical bytes.
func JSONValue[T any]() collcodec.ValueCodec[T] {
	return jsonValue[T]{}
}

type jsonValue[T any] struct{}

func (jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValue[T]) Decode(b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", typeName[T](), err)
	}
	return v, nil
}

func (c jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValue[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (jsonValue[T]) Stringify(value T) string {
	return fmt.Sprintf("%+v", value)
}

func (jsonValue[T]) ValueType() string {
	return "json/" + typeName[T]()
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
