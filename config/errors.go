package config

import "errors"

// ErrBadDocument is config's fatal, exit-1 error (SPEC_FULL.md §8):
// a parameter or cell document could not be read or named an
// unrecognized value. Always wrapped naming the offending key.
var ErrBadDocument = errors.New("bad configuration document")
