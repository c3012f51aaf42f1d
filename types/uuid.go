package types

import (
	"fmt"

	"github.com/google/uuid"
)

// UUID returns a descriptor that stores a uuid.UUID as its 16 raw bytes.
func UUID(def uuid.UUID) Column {
	return uuidColumn{def: def}
}

type uuidColumn struct {
	def uuid.UUID
}

func (c uuidColumn) Default() any { return c.def }

func (c uuidColumn) Pack(v any) ([]byte, error) {
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil, packTypeError("uuid", "uuid.UUID", v)
	}
	b := make([]byte, 16)
	copy(b, id[:])
	return b, nil
}

func (c uuidColumn) Unpack(data []byte) (any, error) {
	id, err := uuid.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("types: uuid column: %w", err)
	}
	return id, nil
}
