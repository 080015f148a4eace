package hashring

import (
	"fmt"
	"sort"
	"strconv"
)

// DefaultReplicas is the number of virtual nodes created per physical node
// when no replica count is configured.
const DefaultReplicas = 150

// Ring is a consistent hashing ring. Each physical node occupies a fixed
// number of deterministic positions (virtual nodes) on a circular 32-bit
// hash space; a key is owned by the node at the first position clockwise
// from the key's hash.
//
// A Ring carries no internal locking. Callers must serialize Add, Remove,
// and SetNodes; Get, GetN, Snapshot, and the accessors are safe to call
// concurrently against a ring that is not being mutated at the same time.
type Ring struct {
	replicas int
	hashFn   HashFunc
	owners   map[uint32]string // position -> owning node
	index    []uint32          // positions in ascending order
}

// Option configures a Ring at construction.
type Option func(*Ring)

// WithReplicas sets the number of virtual nodes per physical node. The
// count is fixed for the lifetime of the ring. Non-positive values fall
// back to DefaultReplicas.
func WithReplicas(n int) Option {
	return func(r *Ring) {
		if n > 0 {
			r.replicas = n
		}
	}
}

// WithHashFunc sets the position hash. A nil fn keeps the default Murmur3.
func WithHashFunc(fn HashFunc) Option {
	return func(r *Ring) {
		if fn != nil {
			r.hashFn = fn
		}
	}
}

// New creates an empty ring.
func New(opts ...Option) *Ring {
	r := &Ring{
		replicas: DefaultReplicas,
		hashFn:   Murmur3,
		owners:   make(map[uint32]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// position computes where replica i of node lands on the ring.
func (r *Ring) position(node string, i int) uint32 {
	return r.hashFn([]byte(node + ":" + strconv.Itoa(i)))
}

// Add places a node on the ring at its replica positions. If a position is
// already occupied the new node takes it over (last write wins). Re-adding
// a node recomputes the identical positions and leaves the ring unchanged.
func (r *Ring) Add(node string) error {
	if err := validateName(node); err != nil {
		return fmt.Errorf("add node: %w", err)
	}
	for i := 0; i < r.replicas; i++ {
		pos := r.position(node, i)
		if _, taken := r.owners[pos]; !taken {
			r.insert(pos)
		}
		r.owners[pos] = node
	}
	return nil
}

// Remove takes a node off the ring. Each of the node's replica positions is
// recomputed and deleted only if the node still owns it, so a position lost
// to a colliding virtual node of another node is left alone. Removing a
// node that is not on the ring is a no-op.
func (r *Ring) Remove(node string) error {
	if err := validateName(node); err != nil {
		return fmt.Errorf("remove node: %w", err)
	}
	for i := 0; i < r.replicas; i++ {
		pos := r.position(node, i)
		if r.owners[pos] != node {
			continue
		}
		delete(r.owners, pos)
		r.remove(pos)
	}
	return nil
}

// SetNodes rebuilds the ring with exactly the given membership. Every name
// is validated before any state changes; an invalid name rejects the whole
// call and leaves the ring as it was.
func (r *Ring) SetNodes(nodes []string) error {
	for _, node := range nodes {
		if err := validateName(node); err != nil {
			return fmt.Errorf("set nodes: %w", err)
		}
	}

	owners := make(map[uint32]string, len(nodes)*r.replicas)
	index := make([]uint32, 0, len(nodes)*r.replicas)
	for _, node := range nodes {
		for i := 0; i < r.replicas; i++ {
			pos := r.position(node, i)
			if _, taken := owners[pos]; !taken {
				index = append(index, pos)
			}
			owners[pos] = node
		}
	}
	sort.Slice(index, func(i, j int) bool {
		return index[i] < index[j]
	})

	r.owners = owners
	r.index = index
	return nil
}

// Get returns the node that owns key. It reports false on an empty ring;
// absence is not an error.
func (r *Ring) Get(key string) (string, bool, error) {
	if err := validateName(key); err != nil {
		return "", false, fmt.Errorf("get: %w", err)
	}
	if len(r.index) == 0 {
		return "", false, nil
	}
	return r.owners[r.index[r.successor(r.hashFn([]byte(key)))]], true, nil
}

// GetN returns the first n distinct nodes clockwise from key's position,
// for example a replica preference list. The result is shorter than n when
// the ring holds fewer distinct nodes, and empty when the ring is empty or
// n is not positive. The first element is always Get's answer for key.
func (r *Ring) GetN(key string, n int) ([]string, error) {
	if err := validateName(key); err != nil {
		return nil, fmt.Errorf("getn: %w", err)
	}
	if len(r.index) == 0 || n <= 0 {
		return []string{}, nil
	}
	// The result can never hold more owners than there are positions, so an
	// oversized count must not drive the allocations below.
	if n > len(r.index) {
		n = len(r.index)
	}

	start := r.successor(r.hashFn([]byte(key)))
	seen := make(map[string]bool, n)
	result := make([]string, 0, n)
	for i := 0; i < len(r.index) && len(result) < n; i++ {
		owner := r.owners[r.index[(start+i)%len(r.index)]]
		if !seen[owner] {
			seen[owner] = true
			result = append(result, owner)
		}
	}
	return result, nil
}

// successor finds the index of the first position >= pos, wrapping past the
// last position back to the start of the ring.
func (r *Ring) successor(pos uint32) int {
	idx := sort.Search(len(r.index), func(i int) bool {
		return r.index[i] >= pos
	})
	if idx == len(r.index) {
		idx = 0
	}
	return idx
}

// insert places pos into the sorted index. pos must not already be present.
func (r *Ring) insert(pos uint32) {
	idx := sort.Search(len(r.index), func(i int) bool {
		return r.index[i] >= pos
	})
	r.index = append(r.index, 0)
	copy(r.index[idx+1:], r.index[idx:])
	r.index[idx] = pos
}

// remove deletes pos from the sorted index if present.
func (r *Ring) remove(pos uint32) {
	idx := sort.Search(len(r.index), func(i int) bool {
		return r.index[i] >= pos
	})
	if idx < len(r.index) && r.index[idx] == pos {
		r.index = append(r.index[:idx], r.index[idx+1:]...)
	}
}

// Nodes returns the distinct node names currently owning at least one
// position, sorted for stable output. Membership is derived from position
// ownership, so a node whose every position was taken over by collisions
// no longer appears.
func (r *Ring) Nodes() []string {
	seen := make(map[string]bool, len(r.owners))
	nodes := make([]string, 0, len(r.owners))
	for _, owner := range r.owners {
		if !seen[owner] {
			seen[owner] = true
			nodes = append(nodes, owner)
		}
	}
	sort.Strings(nodes)
	return nodes
}

// Size returns the number of distinct physical nodes on the ring.
func (r *Ring) Size() int {
	return len(r.Nodes())
}

// Replicas returns the configured number of virtual nodes per physical node.
func (r *Ring) Replicas() int {
	return r.replicas
}

// String summarizes the ring state for diagnostics.
func (r *Ring) String() string {
	return fmt.Sprintf("hashring: positions=%d nodes=%d replicas=%d",
		len(r.index), r.Size(), r.replicas)
}
