package encoding

import (
	"encoding/binary"
	"math/big"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// MaxUint128 is 2^128-1.
var MaxUint128 = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// FromBytes reads b as a little-endian integer.
func FromBytes(b [16]byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[:8]),
		Hi: binary.LittleEndian.Uint64(b[8:]),
	}
}

// Bytes returns the little-endian representation of u.
func (u Uint128) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], u.Lo)
	binary.LittleEndian.PutUint64(b[8:], u.Hi)
	return b
}

// IsZero reports whether u is 0.
func (u Uint128) IsZero() bool {
	return u.Hi == 0 && u.Lo == 0
}

// DivMod64 returns u/d and u%d. d must be non-zero.
func (u Uint128) DivMod64(d uint64) (Uint128, uint64) {
	q := Uint128{Hi: u.Hi / d}
	r := u.Hi % d
	q.Lo, r = bits.Div64(r, u.Lo, d)
	return q, r
}

// MulAdd64 returns u*m+a and reports whether the result wrapped past 2^128-1.
func (u Uint128) MulAdd64(m, a uint64) (Uint128, bool) {
	hiCarry, hi := bits.Mul64(u.Hi, m)
	loHi, lo := bits.Mul64(u.Lo, m)

	hi, c1 := bits.Add64(hi, loHi, 0)
	lo, c2 := bits.Add64(lo, a, 0)
	hi, c3 := bits.Add64(hi, 0, c2)

	return Uint128{Hi: hi, Lo: lo}, hiCarry != 0 || c1 != 0 || c3 != 0
}

// Big returns u as a math/big integer.
func (u Uint128) Big() *big.Int {
	n := new(big.Int).SetUint64(u.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(u.Lo))
}

// String returns the decimal representation of u.
func (u Uint128) String() string {
	return u.Big().String()
}
