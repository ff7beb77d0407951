package domain

import (
	"fmt"

	"github.com/allisson/opaqueid/internal/opaqueid/encoding"
)

// ID is an opaque identifier of kind K. It holds the encrypted block only;
// recovering the raw id requires the cipher it was created with.
//
// The zero value is not a valid identifier of any kind with overwhelming probability.
type ID[K Kind] struct {
	block Block
}

// New encrypts id under c, tagged with K's tag.
func New[K Kind](id int64, c BlockCipher) ID[K] {
	return ID[K]{block: seal(tagOf[K](), id, c)}
}

// FromBlock wraps an already encrypted block without checking it.
func FromBlock[K Kind](b Block) ID[K] {
	return ID[K]{block: b}
}

// Parse decodes a token into an ID of kind K.
//
// Parsing is syntactic only: any token over the alphabet parses into any kind.
// The tag is checked by Raw.
func Parse[K Kind](s string) (ID[K], error) {
	n, err := encoding.Decode(s)
	if err != nil {
		return ID[K]{}, err
	}
	return ID[K]{block: BlockFromUint128(n)}, nil
}

// Retag reinterprets an ID of kind From as kind To. The result only decrypts
// successfully when both kinds share a tag.
func Retag[To, From Kind](id ID[From]) ID[To] {
	return ID[To]{block: id.block}
}

// Raw decrypts the identifier and returns the id it was created with, or
// ErrWrongTag when the block does not carry K's tag under c.
func (i ID[K]) Raw(c BlockCipher) (int64, error) {
	return open(tagOf[K](), i.block, c)
}

// Block returns the encrypted block.
func (i ID[K]) Block() Block {
	return i.block
}

// IsZero reports whether i is the zero value.
func (i ID[K]) IsZero() bool {
	return i.block == Block{}
}

// Opaque returns the runtime-tagged form of i.
func (i ID[K]) Opaque() Opaque {
	return Opaque{tag: tagOf[K](), block: i.block}
}

// String returns the token.
func (i ID[K]) String() string {
	return encoding.Encode(i.block.Uint128())
}

// GoString implements fmt.GoStringer.
func (i ID[K]) GoString() string {
	return fmt.Sprintf("ID[%s](%s)", tagOf[K](), i)
}

// MarshalText implements encoding.TextMarshaler.
func (i ID[K]) MarshalText() ([]byte, error) {
	return encoding.AppendEncode(make([]byte, 0, encoding.MaxEncodedLen), i.block.Uint128()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID[K]) UnmarshalText(text []byte) error {
	parsed, err := Parse[K](string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
