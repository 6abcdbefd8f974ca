package core

import "hash/fnv"

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// HashString returns the 64-bit FNV-1a hash of s.
func HashString(s string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(s))
	return hasher.Sum64()
}

// HashCombine folds v into an existing FNV-1a hash, one little-endian byte at a time.
func HashCombine(h uint64, v uint32) uint64 {
	for i := 0; i < 4; i++ {
		h ^= uint64(byte(v >> (8 * i)))
		h *= fnvPrime64
	}
	return h
}

// HashEmpty is the FNV-1a hash of no input.
func HashEmpty() uint64 {
	return fnvOffset64
}
