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

// NumberKind tags which variant a decoded number landed in.
type NumberKind uint8

const (
	NumFloat64 NumberKind = iota
	NumInt128
	NumUint128
	NumNumber128
)

// NumberResult is the outcome of decoding one JSON number literal. Exactly
// one of F64 (for NumFloat64), I128, U128, or Big is meaningful, selected
// by Kind. IsNaN is only ever true together with Kind == NumFloat64: the
// tier-3 terminal of spec §4.4.
type NumberResult struct {
	Kind  NumberKind
	F64   float64
	I128  Int128
	U128  Uint128
	Big   *big.Float
	IsNaN bool
}

// Float64 approximates the decoded number as a float64 regardless of Kind,
// used by the value model's as_number64() accessor (spec §4.5 test case 5:
// "as_number64() returns a finite approximation, not NaN").
func (r NumberResult) Float64() float64 {
	switch r.Kind {
	case NumFloat64:
		return r.F64
	case NumInt128:
		return r.I128.Float64()
	case NumUint128:
		return r.U128.Float64()
	case NumNumber128:
		f, _ := r.Big.Float64()
		return f
	default:
		return math.NaN()
	}
}

// binary128-equivalent bounds: IEEE 754 quad has max finite exponent
// 2^16383 (~1.19e4932). A decimal exponent whose magnitude exceeds this
// cannot be represented even at tier 2 and terminates at tier 3 (NaN).
// Spec §4.4 tier 3 / §8 scenario 7 (1e5000).
const number128DecimalExponentLimit = 4932

// maxSafeDoubleInt is 2^53, the largest integer every float64 mantissa
// represents exactly.
const maxSafeDoubleInt = 1 << 53

// quadPrecisionBits approximates the 113-bit significand of IEEE 754
// binary128 for the tier-2 number128 path. math/big.Float is the stdlib
// justification recorded in DESIGN.md: no dependency in the retrieval
// pack implements a binary128 type.
const quadPrecisionBits = 113

// DecodeNumber parses one JSON number literal starting at b[0] (sign
// optional) per the grammar in spec §4.4, returning the decoded value and
// the number of bytes consumed. It never returns an error for a
// syntactically valid literal; the tiered overflow discipline means the
// decoder is total over all valid inputs (spec §9, "Number overflow
// discipline").
func DecodeNumber(b []byte) (NumberResult, int, error) {
	i := 0
	n := len(b)
	neg := false
	if i < n && b[i] == '-' {
		neg = true
		i++
	}
	intStart := i
	if i >= n || !isDigit(b[i]) {
		return NumberResult{}, 0, Sentinel(ErrInvalidNumber)
	}
	if b[i] == '0' {
		i++
		if i < n && isDigit(b[i]) {
			return NumberResult{}, 0, Sentinel(ErrInvalidNumber) // leading zero, e.g. "01"
		}
	} else {
		for i < n && isDigit(b[i]) {
			i++
		}
	}
	intEnd := i
	intDigits := intEnd - intStart

	fracStart, fracEnd := -1, -1
	if i < n && b[i] == '.' {
		i++
		fracStart = i
		for i < n && isDigit(b[i]) {
			i++
		}
		fracEnd = i
		if fracEnd == fracStart {
			return NumberResult{}, 0, Sentinel(ErrInvalidNumber)
		}
	}

	expNeg := false
	expStart, expEnd := -1, -1
	if i < n && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < n && (b[i] == '+' || b[i] == '-') {
			expNeg = b[i] == '-'
			i++
		}
		expStart = i
		for i < n && isDigit(b[i]) {
			i++
		}
		expEnd = i
		if expEnd == expStart {
			return NumberResult{}, 0, Sentinel(ErrInvalidNumber)
		}
	}

	consumed := i
	isIntegerLiteral := fracStart == -1 && expStart == -1

	if isIntegerLiteral {
		return decodeIntegerLiteral(b[intStart:intEnd], neg), consumed, nil
	}

	exp := 0
	for j := expStart; j < expEnd; j++ {
		exp = exp*10 + int(b[j]-'0')
		if exp > 1_000_000 {
			exp = 1_000_000 // clamp; still well past the NaN threshold below
		}
	}
	if expNeg {
		exp = -exp
	}
	fracDigits := 0
	if fracStart >= 0 {
		fracDigits = fracEnd - fracStart
	}
	// Adjust the effective decimal exponent by the fractional digit count
	// to get the true power-of-ten magnitude of the literal.
	effectiveExp := exp - fracDigits
	magnitudeDigits := intDigits + fracDigits

	if magnitudeDigits+abs(effectiveExp) > number128DecimalExponentLimit {
		return NumberResult{Kind: NumFloat64, F64: math.NaN(), IsNaN: true}, consumed, nil
	}

	// Tier 1: fast path. Digit/exponent budget from spec §4.4.1.
	if intDigits <= 18 && fracDigits <= 15 && abs(exp) <= 22 {
		mantissa := uint64(0)
		for j := intStart; j < intEnd; j++ {
			mantissa = mantissa*10 + uint64(b[j]-'0')
		}
		for j := fracStart; j < fracEnd; j++ {
			mantissa = mantissa*10 + uint64(b[j]-'0')
		}
		f := float64(mantissa) * pow10(effectiveExp)
		if neg {
			f = -f
		}
		if !math.IsInf(f, 0) {
			return NumberResult{Kind: NumFloat64, F64: f}, consumed, nil
		}
	}

	// Tier 2: arbitrary-precision decimal via big.Float at quad precision.
	lit := make([]byte, 0, consumed)
	if neg {
		lit = append(lit, '-')
	}
	lit = append(lit, b[intStart:intEnd]...)
	if fracStart >= 0 {
		lit = append(lit, '.')
		lit = append(lit, b[fracStart:fracEnd]...)
	}
	if expStart >= 0 {
		lit = append(lit, 'e')
		if expNeg {
			lit = append(lit, '-')
		}
		lit = append(lit, b[expStart:expEnd]...)
	}
	f, _, err := big.ParseFloat(string(lit), 10, quadPrecisionBits, big.ToNearestEven)
	if err != nil || f.IsInf() {
		return NumberResult{Kind: NumFloat64, F64: math.NaN(), IsNaN: true}, consumed, nil
	}
	return NumberResult{Kind: NumNumber128, Big: f}, consumed, nil
}

// decodeIntegerLiteral handles the no-fraction, no-exponent case: the only
// case where an exact 128-bit (or fewer) integer is possible. digits
// excludes the sign.
func decodeIntegerLiteral(digits []byte, neg bool) NumberResult {
	mag := Uint128{}
	overflow := false
	for _, d := range digits {
		var of bool
		mag, of = mulAdd128(mag, uint64(d-'0'))
		if of {
			overflow = true
			break
		}
	}
	if overflow {
		return NumberResult{Kind: NumFloat64, F64: math.NaN(), IsNaN: true}
	}
	// Magnitudes up to 2^53 are exact in float64 and stay number64; anything
	// larger goes to the 128-bit tier.
	if mag.Hi == 0 && mag.Lo <= maxSafeDoubleInt {
		f := float64(mag.Lo)
		if neg {
			f = -f
		}
		return NumberResult{Kind: NumFloat64, F64: f}
	}
	if neg {
		return NumberResult{Kind: NumInt128, I128: Int128{Neg: true, Mag: mag}}
	}
	return NumberResult{Kind: NumUint128, U128: mag}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var pow10Table = func() [23]float64 {
	var t [23]float64
	t[0] = 1
	for i := 1; i < len(t); i++ {
		t[i] = t[i-1] * 10
	}
	return t
}()

// pow10 returns 10^exp for |exp| <= 22 exactly (every such power of ten is
// exactly representable in float64), matching spec §4.4's fast-path range.
func pow10(exp int) float64 {
	if exp >= 0 && exp < len(pow10Table) {
		return pow10Table[exp]
	}
	if exp < 0 && -exp < len(pow10Table) {
		return 1 / pow10Table[-exp]
	}
	return math.Pow(10, float64(exp))
}
