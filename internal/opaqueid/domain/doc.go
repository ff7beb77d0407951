// Package domain defines reversible, tagged, opaque identifiers.
//
// An internal int64 id is packed with a 64-bit kind tag into a 128-bit block,
// encrypted with a caller-supplied block cipher and rendered as a token over a
// 52-letter alphabet. Decoding reverses each step and rejects blocks whose tag
// does not match the expected kind:
//
//	id -> Concat(tag, id) -> EncryptBlock -> ID[K] -> String
//	token -> Parse -> DecryptBlock -> Bisect -> tag check -> id
//
// Nothing is persisted. The cipher is the only secret and it is always passed
// in explicitly; the package holds no global key.
package domain
