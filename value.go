/*
 * Copyright 2024 The fastjson Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package simdjson

import (
	"math"
	"math/big"
)

// Type discriminates a Value's variant. Accessors for the wrong variant
// never panic: they return the zero/NaN value for that accessor, per spec
// §4.5. The predicate family (IsNull, IsBoolean, ...) is the only
// sanctioned way to discriminate.
type Type uint8

const (
	TypeNull Type = iota
	TypeBoolean
	TypeNumber64
	TypeInteger128
	TypeUnsigned128
	TypeNumber128
	TypeString
	TypeArray
	TypeObject
)

// Value is the tagged variant representing one node of a JSON value tree
// (spec §3). The zero Value is TypeNull.
type Value struct {
	typ  Type
	b    bool
	num  NumberResult
	str  []byte
	arr  []*Value
	obj  *object
}

// object is a key-uniqueness-enforced mapping with last-write-wins insert
// semantics. Iteration order is the order in which each key was first
// inserted; overwriting a key keeps its position (spec §3, §9).
type object struct {
	index map[string]int
	keys  []string
	vals  []*Value
}

func newObject() *object {
	return &object{index: make(map[string]int)}
}

// Set inserts or overwrites key with value; later writes win.
func (o *object) Set(key string, v *Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

func (o *object) Get(key string) (*Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.vals[i], true
}

func (o *object) Len() int { return len(o.keys) }

// Range calls fn for every key/value pair in insertion order. Deleting or
// adding keys from fn is not supported.
func (o *object) Range(fn func(key string, v *Value) bool) {
	for i, k := range o.keys {
		if !fn(k, o.vals[i]) {
			return
		}
	}
}

// --- constructors ---

// NullValue returns a value of type null.
func NullValue() *Value { return &Value{typ: TypeNull} }

// BoolValue returns a value of type boolean.
func BoolValue(b bool) *Value { return &Value{typ: TypeBoolean, b: b} }

// Float64Value returns a value of type number64.
func Float64Value(f float64) *Value {
	return &Value{typ: TypeNumber64, num: NumberResult{Kind: NumFloat64, F64: f}}
}

// NaNValue returns the tier-3 terminal: a number64 carrying a NaN bit
// pattern, observable only via IsNaN(). Spec §4.4.
func NaNValue() *Value {
	return &Value{typ: TypeNumber64, num: NumberResult{Kind: NumFloat64, F64: math.NaN(), IsNaN: true}}
}

// Int128Value returns a value of type integer128.
func Int128Value(i Int128) *Value {
	return &Value{typ: TypeInteger128, num: NumberResult{Kind: NumInt128, I128: i}}
}

// Uint128Value returns a value of type unsigned128.
func Uint128Value(u Uint128) *Value {
	return &Value{typ: TypeUnsigned128, num: NumberResult{Kind: NumUint128, U128: u}}
}

// Number128Value returns a value of type number128 (quad precision).
func Number128Value(f *big.Float) *Value {
	return &Value{typ: TypeNumber128, num: NumberResult{Kind: NumNumber128, Big: f}}
}

// numberValue wraps an already-decoded NumberResult (used by the parser so
// it never has to re-derive the Kind/NaN decision made by DecodeNumber).
func numberValue(r NumberResult) *Value {
	switch r.Kind {
	case NumInt128:
		return &Value{typ: TypeInteger128, num: r}
	case NumUint128:
		return &Value{typ: TypeUnsigned128, num: r}
	case NumNumber128:
		return &Value{typ: TypeNumber128, num: r}
	default:
		return &Value{typ: TypeNumber64, num: r}
	}
}

// StringValue returns a value of type string. The byte slice is retained,
// not copied; callers that need isolation should copy before constructing.
func StringValue(s []byte) *Value { return &Value{typ: TypeString, str: s} }

// StringValueFromString is a convenience wrapper over StringValue.
func StringValueFromString(s string) *Value { return StringValue([]byte(s)) }

// ArrayValue returns a value of type array containing items in order.
func ArrayValue(items ...*Value) *Value { return &Value{typ: TypeArray, arr: items} }

// ObjectValue returns an empty value of type object.
func ObjectValue() *Value { return &Value{typ: TypeObject, obj: newObject()} }

// --- predicates ---

func (v *Value) Type() Type { return v.typ }

func (v *Value) IsNull() bool    { return v == nil || v.typ == TypeNull }
func (v *Value) IsBoolean() bool { return v != nil && v.typ == TypeBoolean }
func (v *Value) IsNumber64() bool {
	return v != nil && v.typ == TypeNumber64
}
func (v *Value) IsInteger128() bool  { return v != nil && v.typ == TypeInteger128 }
func (v *Value) IsUnsigned128() bool { return v != nil && v.typ == TypeUnsigned128 }
func (v *Value) IsNumber128() bool   { return v != nil && v.typ == TypeNumber128 }
func (v *Value) IsString() bool      { return v != nil && v.typ == TypeString }
func (v *Value) IsArray() bool       { return v != nil && v.typ == TypeArray }
func (v *Value) IsObject() bool      { return v != nil && v.typ == TypeObject }

// IsNumeric reports whether v holds any of the four numeric variants.
func (v *Value) IsNumeric() bool {
	if v == nil {
		return false
	}
	switch v.typ {
	case TypeNumber64, TypeInteger128, TypeUnsigned128, TypeNumber128:
		return true
	}
	return false
}

// IsNaN reports the tier-3 terminal state: only ever true for a
// TypeNumber64 value produced by an overflowing number decode.
func (v *Value) IsNaN() bool {
	return v != nil && v.typ == TypeNumber64 && v.num.IsNaN
}

// --- accessors: zero-value-on-mismatch, never panic ---

func (v *Value) AsBool() bool {
	if v == nil || v.typ != TypeBoolean {
		return false
	}
	return v.b
}

// AsFloat64 returns the value as a float64 regardless of numeric variant,
// approximating 128-bit/quad values. Returns NaN for non-numeric values.
func (v *Value) AsFloat64() float64 {
	if v == nil || !v.IsNumeric() {
		return math.NaN()
	}
	return v.num.Float64()
}

func (v *Value) AsInt128() Int128 {
	if v == nil || v.typ != TypeInteger128 {
		return Int128{}
	}
	return v.num.I128
}

func (v *Value) AsUint128() Uint128 {
	if v == nil || v.typ != TypeUnsigned128 {
		return Uint128{}
	}
	return v.num.U128
}

func (v *Value) AsNumber128() *big.Float {
	if v == nil || v.typ != TypeNumber128 {
		return big.NewFloat(0)
	}
	return v.num.Big
}

func (v *Value) AsBytes() []byte {
	if v == nil || v.typ != TypeString {
		return nil
	}
	return v.str
}

func (v *Value) AsString() string {
	return string(v.AsBytes())
}

// ArrayLen returns len(v) for an array, 0 otherwise.
func (v *Value) ArrayLen() int {
	if v == nil || v.typ != TypeArray {
		return 0
	}
	return len(v.arr)
}

// ArrayAt returns the element at i, or nil if v is not an array or i is
// out of range.
func (v *Value) ArrayAt(i int) *Value {
	if v == nil || v.typ != TypeArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// ArrayItems returns the backing slice directly; callers must not mutate
// it unless they own v exclusively.
func (v *Value) ArrayItems() []*Value {
	if v == nil || v.typ != TypeArray {
		return nil
	}
	return v.arr
}

// ObjectLen returns the key count for an object, 0 otherwise.
func (v *Value) ObjectLen() int {
	if v == nil || v.typ != TypeObject {
		return 0
	}
	return v.obj.Len()
}

// ObjectGet looks up key in an object, expected O(1). Returns (nil, false)
// if v is not an object or the key is absent.
func (v *Value) ObjectGet(key string) (*Value, bool) {
	if v == nil || v.typ != TypeObject {
		return nil, false
	}
	return v.obj.Get(key)
}

// ObjectRange iterates an object's entries in the order each key was first
// inserted (spec §3, §9).
func (v *Value) ObjectRange(fn func(key string, val *Value) bool) {
	if v == nil || v.typ != TypeObject {
		return
	}
	v.obj.Range(fn)
}

// Clone returns a deep copy of v. Spec §3: cloning is explicit and deep.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	cp := &Value{typ: v.typ, b: v.b, num: v.num}
	switch v.typ {
	case TypeString:
		cp.str = append([]byte(nil), v.str...)
	case TypeArray:
		cp.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			cp.arr[i] = e.Clone()
		}
	case TypeObject:
		cp.obj = newObject()
		v.obj.Range(func(k string, val *Value) bool {
			cp.obj.Set(k, val.Clone())
			return true
		})
	case TypeNumber128:
		if v.num.Big != nil {
			cp.num.Big = new(big.Float).Copy(v.num.Big)
		}
	}
	return cp
}
