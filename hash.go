package hashring

import (
	"github.com/cespare/xxhash"
	"github.com/spaolacci/murmur3"
)

// HashFunc maps bytes onto the 32-bit ring position space. Implementations
// must be deterministic across calls, processes, and platforms for identical
// input: snapshots store membership rather than positions, so restoring a
// ring recomputes every position with the same function (see Restore).
type HashFunc func(data []byte) uint32

// Murmur3 is the default HashFunc, the 32-bit MurmurHash3 variant.
func Murmur3(data []byte) uint32 {
	return murmur3.Sum32(data)
}

// XXHash positions data with xxHash, truncated to the 32-bit ring space.
func XXHash(data []byte) uint32 {
	return uint32(xxhash.Sum64(data))
}
