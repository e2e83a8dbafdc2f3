package simdjson

import "math/big"

// Int128 is a signed 128-bit integer, stored as a sign flag plus an
// unsigned magnitude. Used when a JSON integer literal overflows int64 but
// still fits in 128 bits. Spec §3/§4.4.
type Int128 struct {
	Neg bool
	Mag Uint128
}

// Uint128 is an unsigned 128-bit integer, Hi:Lo forming the 128-bit value
// Hi<<64 | Lo.
type Uint128 struct {
	Hi, Lo uint64
}

// mulAdd128 computes u*10 + digit, reporting overflow beyond 128 bits.
func mulAdd128(u Uint128, digit uint64) (Uint128, bool) {
	// Multiply u by 10 using 64x64->128 partial products, then add digit.
	loHi, loLo := mul64(u.Lo, 10)
	hiHi, hiLo := mul64(u.Hi, 10)
	if hiHi != 0 {
		return Uint128{}, true // overflow: Hi*10 alone exceeds 64 bits of carry room
	}
	newLo, carry := add64(loLo, digit)
	newHi := loHi + hiLo
	if carry != 0 {
		var c2 uint64
		newHi, c2 = add64(newHi, carry)
		if c2 != 0 {
			return Uint128{}, true
		}
	}
	if newHi < loHi || newHi < hiLo {
		return Uint128{}, true
	}
	return Uint128{Hi: newHi, Lo: newLo}, false
}

func mul64(a, b uint64) (hi, lo uint64) {
	const mask = 0xFFFFFFFF
	aLo, aHi := a&mask, a>>32
	bLo, bHi := b&mask, b>>32

	lo64 := aLo * bLo
	mid1 := aHi * bLo
	mid2 := aLo * bHi
	hiPart := aHi * bHi

	mid := mid1 + mid2
	carry := uint64(0)
	if mid < mid1 {
		carry = 1 << 32
	}

	lo = lo64 + (mid << 32)
	if lo < lo64 {
		carry++
	}
	hi = hiPart + (mid >> 32) + carry
	return hi, lo
}

func add64(a, b uint64) (sum, carry uint64) {
	sum = a + b
	if sum < a {
		carry = 1
	}
	return
}

// Float64 returns the nearest float64 approximation of u. Never NaN.
func (u Uint128) Float64() float64 {
	if u.Hi == 0 {
		return float64(u.Lo)
	}
	return float64(u.Hi)*18446744073709551616.0 + float64(u.Lo)
}

// Float64 returns the nearest float64 approximation, respecting sign.
func (i Int128) Float64() float64 {
	f := i.Mag.Float64()
	if i.Neg {
		return -f
	}
	return f
}

// BigInt converts to a *big.Int, used only by the serializer's decimal
// formatting (not on the parse hot path).
func (u Uint128) BigInt() *big.Int {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(u.Hi), 64)
	v.Add(v, new(big.Int).SetUint64(u.Lo))
	return v
}

// BigInt converts to a *big.Int.
func (i Int128) BigInt() *big.Int {
	v := i.Mag.BigInt()
	if i.Neg {
		v.Neg(v)
	}
	return v
}

// FitsInt64 reports whether the magnitude (signed) fits in an int64.
func (i Int128) FitsInt64() (int64, bool) {
	if i.Mag.Hi != 0 {
		return 0, false
	}
	if !i.Neg {
		if i.Mag.Lo > 1<<63-1 {
			return 0, false
		}
		return int64(i.Mag.Lo), true
	}
	if i.Mag.Lo > 1<<63 {
		return 0, false
	}
	return -int64(i.Mag.Lo), true
}

// FitsUint64 reports whether u fits in a uint64.
func (u Uint128) FitsUint64() (uint64, bool) {
	if u.Hi != 0 {
		return 0, false
	}
	return u.Lo, true
}
