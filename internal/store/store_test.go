package store

import (
	"testing"
)

// Compile-time checks that the interface is importable and usable.
func TestRepositoryInterfaceExists(t *testing.T) {
	// This test simply validates that the Repository interface compiles
	// and the sentinel errors are accessible.
	_ = ErrNotFound
	_ = ErrDuplicate
	_ = ErrAlreadyApproved
	_ = CreateAccountParams{}

	// Ensure the interface is non-nil type.
	var _ Repository
}
