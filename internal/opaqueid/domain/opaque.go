package domain

import (
	"fmt"

	"github.com/allisson/opaqueid/internal/opaqueid/encoding"
)

// Opaque is an identifier whose kind is only known at runtime, such as one
// named in a request path. It stores the expected tag next to the block and
// checks it in Raw, where ID checks it through its type parameter.
// Both produce the same tokens.
type Opaque struct {
	tag   Tag
	block Block
}

// NewOpaque encrypts id under c, tagged with tag.
func NewOpaque(tag Tag, id int64, c BlockCipher) Opaque {
	return Opaque{tag: tag, block: seal(tag, id, c)}
}

// ParseOpaque decodes a token expected to carry tag. Like Parse, it does not
// check the tag.
func ParseOpaque(tag Tag, s string) (Opaque, error) {
	n, err := encoding.Decode(s)
	if err != nil {
		return Opaque{}, err
	}
	return Opaque{tag: tag, block: BlockFromUint128(n)}, nil
}

// FromOpaque converts o to an ID of kind K. It fails with ErrWrongTag when o
// expects a different tag than K.
func FromOpaque[K Kind](o Opaque) (ID[K], error) {
	if o.tag != tagOf[K]() {
		return ID[K]{}, ErrWrongTag
	}
	return ID[K]{block: o.block}, nil
}

// Tag returns the expected tag.
func (o Opaque) Tag() Tag {
	return o.tag
}

// Block returns the encrypted block.
func (o Opaque) Block() Block {
	return o.block
}

// Raw decrypts the identifier and checks it carries the expected tag.
func (o Opaque) Raw(c BlockCipher) (int64, error) {
	return open(o.tag, o.block, c)
}

// String returns the token.
func (o Opaque) String() string {
	return encoding.Encode(o.block.Uint128())
}

// GoString implements fmt.GoStringer.
func (o Opaque) GoString() string {
	return fmt.Sprintf("Opaque[%s](%s)", o.tag, o)
}
