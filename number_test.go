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
	"testing"
)

func TestDecodeNumberFastPath(t *testing.T) {
	cases := []struct {
		lit  string
		want float64
	}{
		{"0", 0},
		{"-0", 0},
		{"42", 42},
		{"-17", -17},
		{"3.14", 3.14},
		{"1e3", 1000},
		{"-2.5e-2", -0.025},
	}
	for _, c := range cases {
		r, n, err := DecodeNumber([]byte(c.lit))
		if err != nil {
			t.Fatalf("%q: unexpected error %v", c.lit, err)
		}
		if n != len(c.lit) {
			t.Errorf("%q: consumed %d, want %d", c.lit, n, len(c.lit))
		}
		if r.Kind != NumFloat64 {
			t.Errorf("%q: kind = %v, want NumFloat64", c.lit, r.Kind)
		}
		if r.F64 != c.want {
			t.Errorf("%q: got %v, want %v", c.lit, r.F64, c.want)
		}
	}
}

func TestDecodeNumberLeadingZeroRejected(t *testing.T) {
	for _, lit := range []string{"01", "00", "-01"} {
		_, _, err := DecodeNumber([]byte(lit))
		if err == nil {
			t.Fatalf("%q: expected error, got none", lit)
		}
		pe, ok := err.(*ParseError)
		if !ok || pe.Kind != ErrInvalidNumber {
			t.Errorf("%q: expected ErrInvalidNumber, got %v", lit, err)
		}
	}
}

func TestDecodeNumberInt128Tiers(t *testing.T) {
	// 2^53 fits exactly in a float64.
	r, _, err := DecodeNumber([]byte("9007199254740992"))
	if err != nil || r.Kind != NumFloat64 {
		t.Fatalf("2^53: got kind %v, err %v", r.Kind, err)
	}

	// 2^53+1 does not: promoted to Uint128.
	r, _, err = DecodeNumber([]byte("9007199254740993"))
	if err != nil {
		t.Fatalf("2^53+1: unexpected error %v", err)
	}
	if r.Kind != NumUint128 {
		t.Fatalf("2^53+1: kind = %v, want NumUint128", r.Kind)
	}

	// 2^64: still fits in Uint128 exactly.
	r, _, err = DecodeNumber([]byte("18446744073709551616"))
	if err != nil || r.Kind != NumUint128 {
		t.Fatalf("2^64: got kind %v, err %v", r.Kind, err)
	}
	if r.U128.Hi != 1 || r.U128.Lo != 0 {
		t.Errorf("2^64: got {%d, %d}, want {1, 0}", r.U128.Hi, r.U128.Lo)
	}

	// A negative large integer lands in Int128, never Uint128.
	r, _, err = DecodeNumber([]byte("-9223372036854775809")) // -(2^63+1)
	if err != nil || r.Kind != NumInt128 {
		t.Fatalf("-(2^63+1): got kind %v, err %v", r.Kind, err)
	}
	if !r.I128.Neg {
		t.Errorf("-(2^63+1): expected negative sign")
	}
}

func TestDecodeNumberNaNTerminal(t *testing.T) {
	// A 45-digit integer overflows even the 128-bit tier.
	r, _, err := DecodeNumber([]byte("123456789012345678901234567890123456789012345"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsNaN {
		t.Errorf("expected NaN terminal for 45-digit integer overflow")
	}

	// 1e5000 overflows even quad precision's decimal exponent range.
	r, _, err = DecodeNumber([]byte("1e5000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsNaN {
		t.Errorf("expected NaN terminal for 1e5000")
	}
	if !math.IsNaN(r.Float64()) {
		t.Errorf("Float64() should surface NaN, got %v", r.Float64())
	}
}

func TestDecodeNumberNumber128TierRoundTrips(t *testing.T) {
	// Within the 128-bit integer tier's digit budget but carrying a
	// fraction, so it must land in the quad tier rather than tier 1.
	lit := "1.234567890123456789012345678901234"
	r, n, err := DecodeNumber([]byte(lit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(lit) {
		t.Errorf("consumed %d, want %d", n, len(lit))
	}
	if r.Kind != NumNumber128 {
		t.Fatalf("kind = %v, want NumNumber128", r.Kind)
	}
	f := r.Float64()
	if math.Abs(f-1.2345678901234568) > 1e-9 {
		t.Errorf("Float64() = %v, want ~1.2345678901234568", f)
	}
}
