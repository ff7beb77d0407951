// Package encoding maps unsigned 128-bit integers to text over a 52-letter
// alphabet and back.
//
// Digits are emitted least-significant first. Zero encodes to a single "a".
// There is no padding and no checksum: any string over the alphabet decodes to
// some integer as long as it fits in 128 bits.
package encoding

import (
	apperrors "github.com/allisson/opaqueid/internal/errors"
)

const (
	// Alphabet lists the symbols in digit order: "a" is 0, "Z" is 51.
	Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Base is the radix of the encoding.
	Base = uint64(len(Alphabet))

	// MaxEncodedLen is the length of the longest encoding, the one of 2^128-1.
	MaxEncodedLen = 23
)

var (
	// ErrUnknownCharacter indicates a byte outside Alphabet.
	ErrUnknownCharacter = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown character")

	// ErrOverflow indicates a well-formed string whose value does not fit in 128 bits.
	ErrOverflow = apperrors.Wrap(apperrors.ErrInvalidInput, "value exceeds 128 bits")
)

const invalidDigit = 0xff

var digits = func() [256]byte {
	var d [256]byte
	for i := range d {
		d[i] = invalidDigit
	}
	for i := 0; i < len(Alphabet); i++ {
		d[Alphabet[i]] = byte(i)
	}
	return d
}()

// Encode returns the text form of n.
func Encode(n Uint128) string {
	var buf [MaxEncodedLen]byte
	return string(AppendEncode(buf[:0], n))
}

// AppendEncode appends the text form of n to dst and returns the extended slice.
func AppendEncode(dst []byte, n Uint128) []byte {
	for {
		var r uint64
		n, r = n.DivMod64(Base)
		dst = append(dst, Alphabet[r])
		if n.IsZero() {
			return dst
		}
	}
}

// Decode parses s, least-significant digit first. The empty string decodes to 0.
func Decode(s string) (Uint128, error) {
	for i := 0; i < len(s); i++ {
		if digits[s[i]] == invalidDigit {
			return Uint128{}, ErrUnknownCharacter
		}
	}

	var (
		n        Uint128
		overflow bool
	)
	for i := len(s) - 1; i >= 0; i-- {
		n, overflow = n.MulAdd64(Base, uint64(digits[s[i]]))
		if overflow {
			return Uint128{}, ErrOverflow
		}
	}
	return n, nil
}

// IsValid reports whether every byte of s belongs to Alphabet.
func IsValid(s string) bool {
	for i := 0; i < len(s); i++ {
		if digits[s[i]] == invalidDigit {
			return false
		}
	}
	return true
}
