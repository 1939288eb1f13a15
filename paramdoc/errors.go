package paramdoc

import "errors"

// ErrMalformedDocument is a configuration error (spec.md §7): a known key
// holds an out-of-vocabulary spelling, an unparsable scalar, or the wrong
// shape (a mapping expected where a scalar was given, or vice versa).
// Always fatal, always named with the offending key.
var ErrMalformedDocument = errors.New("malformed parameter document")
