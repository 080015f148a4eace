// Package hashring implements a consistent hashing ring with virtual nodes.
// It routes keys to named nodes while minimizing key movement when
// membership changes, and serializes membership so an identical ring can be
// restored in another process.
package hashring
