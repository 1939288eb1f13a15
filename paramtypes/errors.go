package paramtypes

import "errors"

// ErrUnknownValue is wrapped by every Parse* function when a value falls
// outside its closed vocabulary. Per spec.md §4.1, this is always a
// terminal configuration error; callers should not try to recover a
// default.
var ErrUnknownValue = errors.New("unrecognized enumeration value")
