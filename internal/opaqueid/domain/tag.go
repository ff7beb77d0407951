package domain

import (
	"fmt"
	"strings"
)

// MaxTagLen is the longest tag name, in bytes.
const MaxTagLen = 8

// Tag identifies an entity kind inside every block minted for it.
//
// Byte i of the name occupies bits [8i, 8i+8). Unused high bytes are zero.
type Tag uint64

// DeriveTag packs name into a Tag. The empty name yields 0.
func DeriveTag(name string) (Tag, error) {
	if len(name) > MaxTagLen {
		return 0, fmt.Errorf("%w: %q has %d bytes", ErrTagTooLong, name, len(name))
	}

	var tag Tag
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			return 0, fmt.Errorf("%w: %q", ErrTagNotASCII, name)
		}
		tag |= Tag(name[i]) << (8 * i)
	}
	return tag, nil
}

// MustTag is like DeriveTag but panics on an invalid name. It is meant for
// package-level variables that define entity kinds.
func MustTag(name string) Tag {
	tag, err := DeriveTag(name)
	if err != nil {
		panic("domain: MustTag(" + name + "): " + err.Error())
	}
	return tag
}

// Name unpacks the tag back into its name, dropping trailing zero bytes.
func (t Tag) Name() string {
	var b [MaxTagLen]byte
	for i := range b {
		b[i] = byte(t >> (8 * i))
	}
	return strings.TrimRight(string(b[:]), "\x00")
}

// String returns the tag name, or its hex value when the name is not printable.
func (t Tag) String() string {
	name := t.Name()
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] >= 0x7f {
			return fmt.Sprintf("0x%016x", uint64(t))
		}
	}
	return name
}
