package types

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack returns a descriptor that stores a document of type D as msgpack
// bytes. Denser than JSON for the same document; Unpack yields a value of
// the concrete type D.
func Msgpack[D any](def D) Column {
	return msgpackColumn[D]{def: def}
}

type msgpackColumn[D any] struct {
	def D
}

func (c msgpackColumn[D]) Default() any { return c.def }

func (c msgpackColumn[D]) Pack(v any) ([]byte, error) {
	d, ok := v.(D)
	if !ok {
		return nil, packTypeError("msgpack", fmt.Sprintf("%T", c.def), v)
	}
	b, err := msgpack.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("types: msgpack column: %w", err)
	}
	return b, nil
}

func (c msgpackColumn[D]) Unpack(data []byte) (any, error) {
	var d D
	if err := msgpack.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("types: msgpack column: %w", err)
	}
	return d, nil
}
