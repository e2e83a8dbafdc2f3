package simdjson

// Builder constructs an array or object Value incrementally. A zero
// Builder is not usable; use NewArrayBuilder or NewObjectBuilder. Spec §6
// "Value construction".
type Builder struct {
	v *Value
}

// NewArrayBuilder starts building an array value.
func NewArrayBuilder() *Builder {
	return &Builder{v: &Value{typ: TypeArray}}
}

// NewObjectBuilder starts building an object value.
func NewObjectBuilder() *Builder {
	return &Builder{v: &Value{typ: TypeObject, obj: newObject()}}
}

// Append adds val to the array under construction. No-op if the builder
// was started with NewObjectBuilder.
func (b *Builder) Append(val *Value) *Builder {
	if b.v.typ != TypeArray {
		return b
	}
	b.v.arr = append(b.v.arr, val)
	return b
}

// Set inserts or overwrites key in the object under construction
// (last-write-wins). No-op if the builder was started with
// NewArrayBuilder.
func (b *Builder) Set(key string, val *Value) *Builder {
	if b.v.typ != TypeObject {
		return b
	}
	b.v.obj.Set(key, val)
	return b
}

// Build finalizes and returns the constructed Value. The builder must not
// be reused afterwards.
func (b *Builder) Build() *Value {
	return b.v
}
