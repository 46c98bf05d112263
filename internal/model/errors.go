package model

import "errors"

var (
	// ErrIO reports a failed open, read or write of persisted data.
	ErrIO = errors.New("io error")
	// ErrFormat reports corrupt, truncated or version-incompatible data.
	ErrFormat = errors.New("format error")
	// ErrGroupMembership reports an object whose kind is outside the group
	// declared by a collection or reference slot.
	ErrGroupMembership = errors.New("group membership error")
	// ErrLookup reports a relation or property that the kind does not define.
	ErrLookup = errors.New("lookup error")
	// ErrStaleHandle reports a reference that outlived its object or arena
	// epoch.
	ErrStaleHandle = errors.New("stale reference")
)
