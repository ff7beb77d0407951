package domain

import (
	"encoding/binary"
	"math/bits"

	"github.com/allisson/opaqueid/internal/opaqueid/encoding"
)

// BlockSize is the size in bytes of the unit the cipher operates on.
const BlockSize = 16

// Block is a 128-bit cipher block.
//
// A plaintext block holds the id in bytes 0..7 (two's complement, little-endian)
// and the bit-reversed tag in bytes 8..15 (little-endian). Issued tokens depend
// on this layout; it must never change.
type Block [BlockSize]byte

// Concat packs tag and id into a plaintext block.
func Concat(tag Tag, id int64) Block {
	var b Block
	binary.LittleEndian.PutUint64(b[:8], uint64(id))
	binary.LittleEndian.PutUint64(b[8:], bits.Reverse64(uint64(tag)))
	return b
}

// Bisect is the inverse of Concat.
func Bisect(b Block) (Tag, int64) {
	id := int64(binary.LittleEndian.Uint64(b[:8]))
	tag := Tag(bits.Reverse64(binary.LittleEndian.Uint64(b[8:])))
	return tag, id
}

// Uint128 reads the block as a little-endian unsigned integer.
func (b Block) Uint128() encoding.Uint128 {
	return encoding.FromBytes(b)
}

// BlockFromUint128 is the inverse of Block.Uint128.
func BlockFromUint128(n encoding.Uint128) Block {
	return Block(n.Bytes())
}
