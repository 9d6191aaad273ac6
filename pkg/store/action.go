package store

import "errors"

// ActionType tags a mutation for the reducer.
type ActionType int

const (
	// Push appends a new item. Pushing an id that already exists is
	// rejected with ErrDuplicateID rather than overwriting.
	Push ActionType = iota

	// Update replaces the item with the matching id. A missing id is
	// a silent no-op.
	Update

	// Delete removes the item with the matching id. A missing id is a
	// silent no-op.
	Delete
)

func (t ActionType) String() string {
	switch t {
	case Push:
		return "push"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return "invalid"
}

var (
	// ErrInvalidAction marks a dispatch with an unknown action type.
	// The reducers panic with it: an unknown tag is a caller bug, not
	// a runtime condition.
	ErrInvalidAction = errors.New("store: invalid action")

	// ErrDuplicateID is returned when a push collides with an
	// existing id.
	ErrDuplicateID = errors.New("store: id already exists")
)
