package cfmap

import (
	"time"

	"github.com/google/uuid"
)

// Attributes maps declared column names to decoded native values. The
// typed getters return the type's zero value when the attribute is absent
// or holds a different type, which keeps FromRow implementations to one
// line per field.
type Attributes map[string]any

func (a Attributes) String(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a Attributes) Int64(name string) int64 {
	v, _ := a[name].(int64)
	return v
}

func (a Attributes) Float64(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

func (a Attributes) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

func (a Attributes) Bytes(name string) []byte {
	v, _ := a[name].([]byte)
	return v
}

func (a Attributes) Time(name string) time.Time {
	v, _ := a[name].(time.Time)
	return v
}

func (a Attributes) UUID(name string) uuid.UUID {
	v, _ := a[name].(uuid.UUID)
	return v
}
