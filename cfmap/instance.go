package cfmap

// Instance is implemented by mapped row types. GetSuperColumn returns the
// empty string for standard column families.
type Instance interface {
	GetKey() string
	GetSuperColumn() string
}

// MappableInstance constrains *T to a type the engine can populate from
// and flatten back into merged attributes. The pointer constraint lets the
// engine allocate fresh instances with PT(new(T)).
//
// FromRow receives the row key, the super column name (empty when not
// applicable) and the merged attributes; implementations assign their
// fields from them. ToRow returns the instance's current attribute values
// keyed by declared column name, read on insert.
type MappableInstance[T any] interface {
	*T
	Instance
	FromRow(key, superColumn string, attrs Attributes) error
	ToRow() (Attributes, error)
}
