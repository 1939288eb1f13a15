package cell

import "errors"

// ErrMalformedDocument is a fatal configuration error (spec.md §7): the
// cell document could not be parsed, or is missing its required
// MemCellType key.
var ErrMalformedDocument = errors.New("malformed cell document")
