package wire

import "errors"

// ErrLowSwingWithRepeater enforces spec.md §4.2's exclusivity rule:
// low-swing signaling and repeater insertion cannot be combined.
var ErrLowSwingWithRepeater = errors.New("low-swing wire cannot have a repeater class")
