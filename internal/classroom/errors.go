package classroom

import "errors"

var (
	// ErrRoomNotFound means the classroom ID is not tracked by the registry.
	ErrRoomNotFound = errors.New("classroom not found")

	// ErrDuplicateRoom means a classroom with that ID already exists.
	ErrDuplicateRoom = errors.New("classroom already exists")

	// ErrConnectionUnknown means an operation referenced a connection that
	// was never registered or has already left.
	ErrConnectionUnknown = errors.New("connection not registered")
)
