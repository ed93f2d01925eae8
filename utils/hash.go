package utils

import (
	"github.com/minio/sha256-simd"
)

const HashLength = 32

type Hash [HashLength]byte

// Hasher is the network-wide hash primitive: SHA-256 over the concatenation of data.
var Hasher = func(data ...[]byte) []byte {
	hasher := sha256.New()
	for i := 0; i < len(data); i++ {
		hasher.Write(data[i])
	}
	return hasher.Sum(nil)
}

// HashOf is Hasher returning a fixed-size array.
func HashOf(data ...[]byte) Hash {
	var h Hash
	copy(h[:], Hasher(data...))
	return h
}
