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

import "strconv"

const hexDigits = "0123456789abcdef"

// Serialize renders v in compact form (no whitespace). Spec §6/§4.9.
// Serialization is infallible for a valid value tree.
func Serialize(v *Value) []byte {
	return AppendTo(nil, v)
}

// AppendTo renders v in compact form, appending to dst and returning the
// extended slice (fewer allocations for repeated serialization).
func AppendTo(dst []byte, v *Value) []byte {
	return writeValue(dst, v, "", 0)
}

// SerializePretty renders v with the given indent unit repeated per
// nesting level (e.g. "  " for two-space indent). Spec §6/§4.9.
func SerializePretty(v *Value, indentUnit string) []byte {
	return writeValue(nil, v, indentUnit, 0)
}

func writeValue(dst []byte, v *Value, indent string, depth int) []byte {
	if v == nil {
		return append(dst, "null"...)
	}
	switch v.typ {
	case TypeNull:
		return append(dst, "null"...)
	case TypeBoolean:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case TypeNumber64:
		if v.num.IsNaN {
			// Documented deviation from strict JSON, spec §4.9/§6: NaN
			// serializes as null to keep parse-stability.
			return append(dst, "null"...)
		}
		return strconv.AppendFloat(dst, v.num.F64, 'g', -1, 64)
	case TypeInteger128:
		return append(dst, v.num.I128.BigInt().String()...)
	case TypeUnsigned128:
		return append(dst, v.num.U128.BigInt().String()...)
	case TypeNumber128:
		return append(dst, v.num.Big.Text('g', 40)...)
	case TypeString:
		return writeString(dst, v.str)
	case TypeArray:
		return writeArray(dst, v, indent, depth)
	case TypeObject:
		return writeObject(dst, v, indent, depth)
	default:
		return append(dst, "null"...)
	}
}

func writeArray(dst []byte, v *Value, indent string, depth int) []byte {
	dst = append(dst, '[')
	if len(v.arr) == 0 {
		return append(dst, ']')
	}
	for i, elem := range v.arr {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = newlineIndent(dst, indent, depth+1)
		dst = writeValue(dst, elem, indent, depth+1)
	}
	dst = newlineIndent(dst, indent, depth)
	return append(dst, ']')
}

func writeObject(dst []byte, v *Value, indent string, depth int) []byte {
	dst = append(dst, '{')
	if v.obj == nil || v.obj.Len() == 0 {
		return append(dst, '}')
	}
	first := true
	v.obj.Range(func(key string, val *Value) bool {
		if !first {
			dst = append(dst, ',')
		}
		first = false
		dst = newlineIndent(dst, indent, depth+1)
		dst = writeString(dst, []byte(key))
		dst = append(dst, ':')
		if indent != "" {
			dst = append(dst, ' ')
		}
		dst = writeValue(dst, val, indent, depth+1)
		return true
	})
	dst = newlineIndent(dst, indent, depth)
	return append(dst, '}')
}

func newlineIndent(dst []byte, indent string, depth int) []byte {
	if indent == "" {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, indent...)
	}
	return dst
}

// writeString escapes s per JSON string rules, using EscapeScan (C2) to
// emit verbatim runs whenever possible and falling back to per-byte
// escaping only where required. Spec §4.9.
func writeString(dst []byte, s []byte) []byte {
	dst = append(dst, '"')
	pos := 0
	for pos < len(s) {
		next := EscapeScan(s, pos, len(s)-pos)
		dst = append(dst, s[pos:next]...)
		if next >= len(s) {
			break
		}
		c := s[next]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		default: // c < 0x20
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		}
		pos = next + 1
	}
	return append(dst, '"')
}
