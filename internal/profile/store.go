package profile

import "context"

// Store owns the username → profile mapping together with the handle and
// address uniqueness indexes. Implementations must apply each method
// atomically so two concurrent requests cannot double-bind an address or
// claim the same handle.
type Store interface {
	// CreateIfHandleAvailable registers p unless its handle is held by a
	// different username (sentinel.ErrAlreadyUsed). Registering an
	// existing username returns the stored profile unchanged with
	// created=false; the supplied attributes are ignored.
	CreateIfHandleAvailable(ctx context.Context, p *Profile) (stored *Profile, created bool, err error)

	// FindByUsername returns the profile or sentinel.ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*Profile, error)

	// FindByAddress is the address → profile reverse lookup.
	FindByAddress(ctx context.Context, address string) (*Profile, error)

	// List returns all profiles in registration order.
	List(ctx context.Context) ([]*Profile, error)

	// HandleExists reports whether any profile holds the handle.
	HandleExists(ctx context.Context, handle string) (bool, error)

	// Execute atomically validates and mutates one profile. The lock is
	// held across both callbacks, so validate sees the state apply will
	// change. Returns the mutated profile.
	Execute(ctx context.Context, username string, validate func(*Profile) error, apply func(*Profile)) (*Profile, error)
}
