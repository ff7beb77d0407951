package domain

// BlockCipher encrypts and decrypts single 128-bit blocks under a fixed key.
//
// There is no mode, padding or IV: each call transforms one block on its own.
// Implementations must be deterministic and safe for concurrent use.
type BlockCipher interface {
	EncryptBlock(plaintext Block) Block
	DecryptBlock(ciphertext Block) Block
}

// Algorithm names a 128-bit block cipher.
type Algorithm string

const (
	// AES128 is AES with a 128-bit key.
	AES128 Algorithm = "aes-128"

	// Twofish128 is Twofish with a 128-bit key.
	Twofish128 Algorithm = "twofish-128"
)

// KeySize is the key length in bytes shared by every supported algorithm.
const KeySize = 16

// Validate checks if the algorithm is supported.
func (a Algorithm) Validate() error {
	switch a {
	case AES128, Twofish128:
		return nil
	default:
		return ErrUnsupportedAlgorithm
	}
}

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// seal packs and encrypts.
func seal(tag Tag, id int64, c BlockCipher) Block {
	return c.EncryptBlock(Concat(tag, id))
}

// open decrypts, unpacks and checks the tag.
func open(tag Tag, b Block, c BlockCipher) (int64, error) {
	got, id := Bisect(c.DecryptBlock(b))
	if got != tag {
		return 0, ErrWrongTag
	}
	return id, nil
}
