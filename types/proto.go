package types

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Proto returns a descriptor that stores a protobuf message in its wire
// format. The prototype supplies the concrete message type: Default and
// Unpack return fresh messages of that type, never the prototype itself.
func Proto(prototype proto.Message) Column {
	return protoColumn{prototype: prototype}
}

type protoColumn struct {
	prototype proto.Message
}

func (c protoColumn) Default() any {
	return proto.Clone(c.prototype)
}

func (c protoColumn) Pack(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, packTypeError("proto", "proto.Message", v)
	}
	b, err := proto.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("types: proto column: %w", err)
	}
	return b, nil
}

func (c protoColumn) Unpack(data []byte) (any, error) {
	m := c.prototype.ProtoReflect().New().Interface()
	if err := proto.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("types: proto column: %w", err)
	}
	return m, nil
}
