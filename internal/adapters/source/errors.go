package source

import "errors"

// ErrSource means the curated source could not be read at all. Partial tab
// failures are absorbed and logged instead.
var ErrSource = errors.New("curated source unavailable")
