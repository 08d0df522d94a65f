package art

import "errors"

var (
	// ErrUnsupportedKind is returned when a primitive tag is not one of the
	// four recognized kinds.
	ErrUnsupportedKind = errors.New("art: unsupported primitive kind")

	// ErrInvalidTreeOp is returned for misuse of the tree contract: inserting a
	// node before itself, or attaching a bare text instance.
	ErrInvalidTreeOp = errors.New("art: invalid tree operation")

	// ErrUnsupportedFill is returned when a fill descriptor is applied to a
	// node whose backend lacks the matching fill capability.
	ErrUnsupportedFill = errors.New("art: fill not supported by backend node")

	// ErrNotAttached is returned by Surface operations before Attach or after
	// Detach.
	ErrNotAttached = errors.New("art: surface is not attached")

	// ErrAlreadyAttached is returned by Attach on an attached Surface.
	ErrAlreadyAttached = errors.New("art: surface is already attached")
)
