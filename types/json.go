package types

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSON returns a descriptor that stores a document of type D as JSON bytes.
// Unpack yields a value of the concrete type D.
func JSON[D any](def D) Column {
	return jsonColumn[D]{def: def}
}

type jsonColumn[D any] struct {
	def D
}

func (c jsonColumn[D]) Default() any { return c.def }

func (c jsonColumn[D]) Pack(v any) ([]byte, error) {
	d, ok := v.(D)
	if !ok {
		return nil, packTypeError("json", fmt.Sprintf("%T", c.def), v)
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("types: json column: %w", err)
	}
	return b, nil
}

func (c jsonColumn[D]) Unpack(data []byte) (any, error) {
	var d D
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("types: json column: %w", err)
	}
	return d, nil
}
