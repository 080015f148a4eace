package hashring

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the serializable ring state: the node membership and the
// replica count. Positions are never stored; restoring recomputes them, so
// two processes exchanging snapshots must hash with the same function.
type Snapshot struct {
	Nodes    []string `json:"nodes"`
	Replicas int      `json:"replicas"`
}

// Snapshot captures the distinct node names and the configured replica
// count. The node order carries no meaning; it is sorted for stable output.
func (r *Ring) Snapshot() Snapshot {
	return Snapshot{
		Nodes:    r.Nodes(),
		Replicas: r.replicas,
	}
}

// Restore builds a ring equivalent to the one s was captured from. Because
// adding a node is deterministic, the order of s.Nodes does not affect the
// result. A ring serialized with a custom hash function must be restored
// with the same one via WithHashFunc.
func Restore(s Snapshot, opts ...Option) (*Ring, error) {
	if s.Replicas <= 0 {
		return nil, fmt.Errorf("restore: replicas must be positive, got %d", s.Replicas)
	}
	r := New(opts...)
	r.replicas = s.Replicas
	if err := r.SetNodes(s.Nodes); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return r, nil
}

// MarshalJSON implements json.Marshaler over the ring's Snapshot.
func (r *Ring) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Snapshot())
}

// FromJSON restores a ring serialized by MarshalJSON.
func FromJSON(data []byte, opts ...Option) (*Ring, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("from json: %w", err)
	}
	return Restore(s, opts...)
}
