package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	// ErrNotFound means no item with the requested hash exists in the snapshot.
	ErrNotFound = errors.New("item not found")

	// ErrSnapshot means the catalog snapshot could not be acquired. This is
	// fatal for the run: no wishlist is emitted from an inconsistent catalog.
	ErrSnapshot = errors.New("catalog snapshot unavailable")
)
