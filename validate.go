package hashring

import "errors"

// MaxNameLen bounds node names and lookup keys, in bytes.
const MaxNameLen = 1000

var (
	// ErrEmptyName reports an empty node name or lookup key.
	ErrEmptyName = errors.New("name is empty")
	// ErrNameTooLong reports a node name or lookup key longer than MaxNameLen bytes.
	ErrNameTooLong = errors.New("name exceeds maximum length")
)

// validateName applies the shared precondition for node names and lookup
// keys. It runs before any state is touched, so a rejected mutation never
// partially applies.
func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLen {
		return ErrNameTooLong
	}
	return nil
}
